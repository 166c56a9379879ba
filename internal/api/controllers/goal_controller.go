package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/models/request_models"
	"runmind/internal/services"
	"runmind/pkg/utils"
)

type GoalController struct {
	goalService services.GoalServiceInterface
}

func NewGoalController(goalService services.GoalServiceInterface) *GoalController {
	return &GoalController{goalService: goalService}
}

// List godoc
// @Summary List goals
// @Tags Goals
// @Produce json
// @Param status query string false "active, completed or abandoned"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /goals [get]
// @Router /coaches/athletes/{athleteId}/goals [get]
func (g *GoalController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ownerID, ok := targetAthlete(c, actor)
	if !ok {
		return
	}
	var q request_models.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	goals, err := g.goalService.List(c.Request.Context(), actor, ownerID, q.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goals, "Goals fetched successfully")
}

// Create godoc
// @Summary Set a new goal
// @Tags Goals
// @Accept json
// @Param request body request_models.CreateGoalRequest true "Goal"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /goals [post]
func (g *GoalController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request_models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := g.goalService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, goal, "Goal created")
}

// UpdateStatus godoc
// @Summary Complete, abandon or reactivate a goal
// @Tags Goals
// @Accept json
// @Param id path string true "Goal ID"
// @Param request body request_models.UpdateGoalStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /goals/{id}/status [put]
func (g *GoalController) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateGoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := g.goalService.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goal, "Goal updated")
}

// @Router /goals/{id} [delete]
func (g *GoalController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := g.goalService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Goal deleted")
}
