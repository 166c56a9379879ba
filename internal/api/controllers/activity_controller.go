package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/models/request_models"
	"runmind/internal/services"
	"runmind/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
	commentService  services.CommentServiceInterface
	stravaService   services.StravaServiceInterface
}

func NewActivityController(
	activityService services.ActivityServiceInterface,
	commentService services.CommentServiceInterface,
	stravaService services.StravaServiceInterface,
) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		commentService:  commentService,
		stravaService:   stravaService,
	}
}

// List godoc
// @Summary List activities
// @Description Own activities, or a linked athlete's on the coach route
// @Tags Activities
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD, inclusive"
// @Param type query string false "sport type"
// @Param limit query int false "max 200"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities [get]
// @Router /coaches/athletes/{athleteId}/activities [get]
func (a *ActivityController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ownerID, ok := targetAthlete(c, actor)
	if !ok {
		return
	}
	var q request_models.ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	activities, err := a.activityService.List(c.Request.Context(), actor, ownerID, q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activities, "Activities fetched successfully")
}

// Get godoc
// @Summary Get one activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/{id} [get]
func (a *ActivityController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	activity, err := a.activityService.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Activity fetched successfully")
}

// Create godoc
// @Summary Log a manual activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body request_models.CreateActivityRequest true "Activity"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities [post]
func (a *ActivityController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request_models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := a.activityService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, activity, "Activity created successfully")
}

// SetMentalState godoc
// @Summary Record how the athlete felt during an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body request_models.MentalStateRequest true "Mental state"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/{id}/mental_state [put]
func (a *ActivityController) SetMentalState(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req request_models.MentalStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := a.activityService.SetMentalState(c.Request.Context(), actor, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Mental state saved")
}

// Delete godoc
// @Summary Delete an activity
// @Tags Activities
// @Param id path string true "Activity ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (a *ActivityController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := a.activityService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Activity deleted")
}

// Sync godoc
// @Summary Import new runs from Strava
// @Tags Activities
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/sync [post]
func (a *ActivityController) Sync(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	res, err := a.stravaService.Sync(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Strava sync completed")
}

// ListComments godoc
// @Summary Comments on an activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/{id}/comments [get]
func (a *ActivityController) ListComments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	comments, err := a.commentService.List(c.Request.Context(), actor, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, comments, "Comments fetched successfully")
}

// CreateComment godoc
// @Summary Comment on an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body request_models.CreateCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/{id}/comments [post]
func (a *ActivityController) CreateComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req request_models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	comment, err := a.commentService.Create(c.Request.Context(), actor, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, comment, "Comment added")
}

// DeleteComment godoc
// @Summary Delete your comment
// @Tags Activities
// @Param commentId path string true "Comment ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /comments/{commentId} [delete]
func (a *ActivityController) DeleteComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}

	if err := a.commentService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Comment deleted")
}
