package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runmind/internal/services"
	"runmind/pkg/utils"
)

type StravaController struct {
	stravaService services.StravaServiceInterface
}

func NewStravaController(stravaService services.StravaServiceInterface) *StravaController {
	return &StravaController{stravaService: stravaService}
}

// AuthURL godoc
// @Summary Strava authorization URL
// @Description With a bearer token the Strava account is linked to the caller, without one the callback logs in or signs up
// @Tags Strava
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/strava/url [get]
func (s *StravaController) AuthURL(c *gin.Context) {
	url, err := s.stravaService.AuthURL(c.Request.Context(), optionalActor(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"url": url}, "Strava authorization URL created")
}

// Callback godoc
// @Summary Strava OAuth callback
// @Tags Strava
// @Produce json
// @Param code query string true "authorization code"
// @Param state query string true "state from /auth/strava/url"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/strava/callback [get]
func (s *StravaController) Callback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		utils.RespondError(c, http.StatusBadRequest, "Strava authorization was denied")
		return
	}
	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing code or state")
		return
	}

	res, err := s.stravaService.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Strava connected")
}
