package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/models/request_models"
	"runmind/internal/services"
	"runmind/pkg/utils"
)

type TrainingNoteController struct {
	noteService services.TrainingNoteServiceInterface
}

func NewTrainingNoteController(noteService services.TrainingNoteServiceInterface) *TrainingNoteController {
	return &TrainingNoteController{noteService: noteService}
}

// ListForAthlete godoc
// @Summary Notes the calling coach wrote for an athlete
// @Tags Training notes
// @Produce json
// @Param athleteId path string true "Athlete ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/athletes/{athleteId}/training_notes [get]
func (t *TrainingNoteController) ListForAthlete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	athleteID, ok := pathUUID(c, "athleteId")
	if !ok {
		return
	}

	notes, err := t.noteService.ListForAthlete(c.Request.Context(), actor, athleteID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notes, "Training notes fetched successfully")
}

// Create godoc
// @Summary Write a training note for a linked athlete
// @Tags Training notes
// @Accept json
// @Param athleteId path string true "Athlete ID"
// @Param request body request_models.TrainingNoteRequest true "Note"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coaches/athletes/{athleteId}/training_notes [post]
func (t *TrainingNoteController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	athleteID, ok := pathUUID(c, "athleteId")
	if !ok {
		return
	}
	var req request_models.TrainingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := t.noteService.Create(c.Request.Context(), actor, athleteID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, note, "Training note created")
}

// @Router /coaches/training_notes/{noteId} [put]
func (t *TrainingNoteController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	noteID, ok := pathUUID(c, "noteId")
	if !ok {
		return
	}
	var req request_models.TrainingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := t.noteService.Update(c.Request.Context(), actor, noteID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "Training note updated")
}

// @Router /coaches/training_notes/{noteId} [delete]
func (t *TrainingNoteController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	noteID, ok := pathUUID(c, "noteId")
	if !ok {
		return
	}

	if err := t.noteService.Delete(c.Request.Context(), actor, noteID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Training note deleted")
}

// ListReceived godoc
// @Summary Notes written for the calling runner
// @Tags Training notes
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/training_notes [get]
func (t *TrainingNoteController) ListReceived(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	notes, err := t.noteService.ListReceived(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notes, "Training notes fetched successfully")
}
