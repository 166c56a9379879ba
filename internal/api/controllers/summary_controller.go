package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/models/request_models"
	"runmind/internal/services"
	"runmind/pkg/utils"
)

type SummaryController struct {
	summaryService services.SummaryServiceInterface
}

func NewSummaryController(summaryService services.SummaryServiceInterface) *SummaryController {
	return &SummaryController{summaryService: summaryService}
}

// Get godoc
// @Summary Training summary
// @Description Totals plus distance and moving time bucketed by day, week or month
// @Tags Activities
// @Produce json
// @Param from     query string false "YYYY-MM-DD (default: 12 weeks before to)"
// @Param to       query string false "YYYY-MM-DD, inclusive (default: today)"
// @Param type     query string false "sport type"
// @Param interval query string false "Bucket size: day | week | month (default: week)"
// @Param tz       query string false "IANA timezone for bucketing (default: UTC)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/summary [get]
// @Router /coaches/athletes/{athleteId}/summary [get]
func (s *SummaryController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ownerID, ok := targetAthlete(c, actor)
	if !ok {
		return
	}
	var q request_models.SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	summary, err := s.summaryService.Build(c.Request.Context(), actor, ownerID, q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Training summary fetched successfully")
}
