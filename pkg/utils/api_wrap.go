package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"runmind/pkg/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, "success", message, data)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, "success", message, data)
}

func RespondError(c *gin.Context, code int, message string) {
	respond(c, code, "error", message, nil)
}

func respond(c *gin.Context, code int, status, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  status,
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code := StatusCode(err)

	var svcErr *ServiceError
	if code == http.StatusInternalServerError || !errors.As(err, &svcErr) {
		log.Log.WithFields(logrus.Fields{
			"trace_id": c.GetString("trace_id"),
			"path":     c.FullPath(),
		}).WithError(err).Error("request failed")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if svcErr.Details != nil {
		respond(c, code, "error", svcErr.Message, svcErr.Details)
		return
	}
	RespondError(c, code, svcErr.Message)
}
