package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/models/request_models"
	"runmind/internal/services"
	"runmind/pkg/utils"
)

// JournalController serves the diary and the diet log.
type JournalController struct {
	diaryService services.DiaryServiceInterface
	dietService  services.DietServiceInterface
}

func NewJournalController(diaryService services.DiaryServiceInterface, dietService services.DietServiceInterface) *JournalController {
	return &JournalController{diaryService: diaryService, dietService: dietService}
}

// ListDiary godoc
// @Summary List diary entries
// @Tags Journal
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diary [get]
// @Router /coaches/athletes/{athleteId}/diary [get]
func (j *JournalController) ListDiary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ownerID, ok := targetAthlete(c, actor)
	if !ok {
		return
	}
	var q request_models.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	entries, err := j.diaryService.List(c.Request.Context(), actor, ownerID, q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Diary entries fetched successfully")
}

// CreateDiary godoc
// @Summary Write a diary entry
// @Tags Journal
// @Accept json
// @Param request body request_models.DiaryEntryRequest true "Entry"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diary [post]
func (j *JournalController) CreateDiary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request_models.DiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := j.diaryService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, entry, "Diary entry created")
}

// UpdateDiary replaces the editable fields of an entry.
// @Router /diary/{id} [put]
func (j *JournalController) UpdateDiary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req request_models.DiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := j.diaryService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Diary entry updated")
}

// @Router /diary/{id} [delete]
func (j *JournalController) DeleteDiary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := j.diaryService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Diary entry deleted")
}

// ListDiet godoc
// @Summary List diet logs
// @Tags Journal
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diet [get]
// @Router /coaches/athletes/{athleteId}/diet [get]
func (j *JournalController) ListDiet(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ownerID, ok := targetAthlete(c, actor)
	if !ok {
		return
	}
	var q request_models.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	logs, err := j.dietService.List(c.Request.Context(), actor, ownerID, q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, logs, "Diet logs fetched successfully")
}

// CreateDiet godoc
// @Summary Log a meal
// @Tags Journal
// @Accept json
// @Param request body request_models.CreateDietLogRequest true "Meal"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diet [post]
func (j *JournalController) CreateDiet(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request_models.CreateDietLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := j.dietService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, entry, "Diet log created")
}

// PatchDiet godoc
// @Summary Partially update a diet log
// @Description Only the fields present in the body change
// @Tags Journal
// @Accept json
// @Param id path string true "Diet log ID"
// @Param request body request_models.DietLogPatch true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diet/{id} [patch]
func (j *JournalController) PatchDiet(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var patch request_models.DietLogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := j.dietService.Patch(c.Request.Context(), actor, id, patch)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Diet log updated")
}

// @Router /diet/{id} [delete]
func (j *JournalController) DeleteDiet(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := j.dietService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Diet log deleted")
}
