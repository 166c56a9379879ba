package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/models/request_models"
	"runmind/internal/services"
	"runmind/pkg/utils"
)

type LinkController struct {
	linkService services.LinkServiceInterface
}

func NewLinkController(linkService services.LinkServiceInterface) *LinkController {
	return &LinkController{linkService: linkService}
}

// CreateRequest godoc
// @Summary Ask a coach to coach you
// @Description A runner sends a link request to the coach with the given email
// @Tags Coaching
// @Accept json
// @Produce json
// @Param request body request_models.CreateLinkRequest true "Coach email"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/link/request [post]
func (l *LinkController) CreateRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request_models.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	link, err := l.linkService.CreateRequest(c.Request.Context(), actor, req.CoachEmail)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, link, "Link request sent")
}

// ListPending godoc
// @Summary Pending link requests of the calling coach
// @Tags Coaching
// @Produce json
// @Param status query string false "only pending is supported"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/link/requests [get]
func (l *LinkController) ListPending(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if status := c.Query("status"); status != "" && status != "pending" {
		utils.RespondError(c, http.StatusBadRequest, "Only pending requests can be listed here")
		return
	}

	links, err := l.linkService.ListPendingForCoach(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, links, "Pending requests fetched successfully")
}

// Respond godoc
// @Summary Accept or decline a link request
// @Tags Coaching
// @Accept json
// @Produce json
// @Param linkId path string true "Link ID"
// @Param request body request_models.RespondLinkRequest true "accepted or declined"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/link/requests/{linkId} [put]
func (l *LinkController) Respond(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	linkID, ok := pathUUID(c, "linkId")
	if !ok {
		return
	}
	var req request_models.RespondLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	link, err := l.linkService.RespondToRequest(c.Request.Context(), actor, linkID, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, link, "Link request updated")
}

// ListLinked godoc
// @Summary Linked athletes (coach) or coaches (runner)
// @Tags Coaching
// @Produce json
// @Param status query string false "pending, accepted, declined or revoked; defaults to accepted"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/athletes [get]
// @Router /athletes/mycoaches [get]
func (l *LinkController) ListLinked(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var q request_models.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	links, err := l.linkService.ListLinked(c.Request.Context(), actor, q.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, links, "Links fetched successfully")
}

// Revoke godoc
// @Summary Remove a coach link
// @Description Either party deletes the link; the pair may link again later
// @Tags Coaching
// @Param linkId path string true "Link ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/link/{linkId} [delete]
func (l *LinkController) Revoke(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	linkID, ok := pathUUID(c, "linkId")
	if !ok {
		return
	}

	if err := l.linkService.Revoke(c.Request.Context(), actor, linkID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Link revoked")
}
