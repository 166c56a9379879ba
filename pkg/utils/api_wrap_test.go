package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleServiceErrorKinds(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest: Validation("bad input"),
		http.StatusNotFound:   ErrLinkNotFound,
		http.StatusForbidden:  ErrNotLinkCoach,
		http.StatusConflict:   NewServiceError(ErrConflict, "already exists"),
	}
	for code, err := range cases {
		w, body := serveError(t, err)
		assert.Equal(t, code, w.Code)
		assert.Equal(t, code, body.Code)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "trace-1", body.TraceID)
	}
}

func TestHandleServiceErrorHidesInternalCause(t *testing.T) {
	w, body := serveError(t, Internal(errors.New("pq: connection refused"), "failed to load links"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleServiceErrorUnknownError(t *testing.T) {
	w, _ := serveError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleServiceErrorDetails(t *testing.T) {
	err := NewServiceError(ErrConflict, "link already exists with status accepted").
		WithDetails(map[string]interface{}{"existing_status": "accepted"})
	w, body := serveError(t, err)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "link already exists with status accepted", body.Message)
	assert.Equal(t, map[string]interface{}{"existing_status": "accepted"}, body.Data)
}

func TestServiceErrorUnwrapsToKind(t *testing.T) {
	assert.True(t, errors.Is(ErrCoachNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrCoachNotFound, ErrForbidden))
	assert.True(t, errors.Is(Internal(errors.New("x"), "y"), ErrInternal))
}
