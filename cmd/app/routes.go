package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"runmind/internal/api/controllers"
	"runmind/internal/models/db_models"
	"runmind/pkg/middleware"
	"runmind/pkg/utils"
)

type Handlers struct {
	fx.In

	Tokens       *utils.TokenManager
	Account      *controllers.AccountController
	Link         *controllers.LinkController
	Activity     *controllers.ActivityController
	Summary      *controllers.SummaryController
	Journal      *controllers.JournalController
	Goal         *controllers.GoalController
	TrainingNote *controllers.TrainingNoteController
	Strava       *controllers.StravaController
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	auth := r.Group("/auth")
	auth.POST("/register", h.Account.Register)
	auth.POST("/login", h.Account.Login)
	auth.POST("/forgot-password", h.Account.ForgotPassword)
	auth.POST("/reset-password", h.Account.ResetPassword)
	auth.GET("/strava/url", middleware.OptionalJWTMiddleware(h.Tokens), h.Strava.AuthURL)
	auth.GET("/strava/callback", h.Strava.Callback)

	api := r.Group("/", middleware.JWTAuthMiddleware(h.Tokens))
	runner := middleware.RoleMiddleware(db_models.RoleRunner)
	coach := middleware.RoleMiddleware(db_models.RoleCoach)

	api.GET("/users/me", h.Account.Me)
	api.GET("/users/training_notes", runner, h.TrainingNote.ListReceived)

	// Link state is role checked again inside the service.
	api.POST("/coaches/link/request", h.Link.CreateRequest)
	api.GET("/coaches/link/requests", h.Link.ListPending)
	api.PUT("/coaches/link/requests/:linkId", h.Link.Respond)
	api.DELETE("/coaches/link/:linkId", h.Link.Revoke)
	api.GET("/coaches/athletes", coach, h.Link.ListLinked)
	api.GET("/athletes/mycoaches", runner, h.Link.ListLinked)

	activities := api.Group("/activities")
	activities.GET("", h.Activity.List)
	activities.POST("", h.Activity.Create)
	activities.POST("/sync", h.Activity.Sync)
	activities.GET("/summary", h.Summary.Get)
	activities.GET("/:id", h.Activity.Get)
	activities.DELETE("/:id", h.Activity.Delete)
	activities.PUT("/:id/mental_state", h.Activity.SetMentalState)
	activities.GET("/:id/comments", h.Activity.ListComments)
	activities.POST("/:id/comments", h.Activity.CreateComment)
	api.DELETE("/comments/:commentId", h.Activity.DeleteComment)

	diary := api.Group("/diary")
	diary.GET("", h.Journal.ListDiary)
	diary.POST("", h.Journal.CreateDiary)
	diary.PUT("/:id", h.Journal.UpdateDiary)
	diary.DELETE("/:id", h.Journal.DeleteDiary)

	diet := api.Group("/diet")
	diet.GET("", h.Journal.ListDiet)
	diet.POST("", h.Journal.CreateDiet)
	diet.PATCH("/:id", h.Journal.PatchDiet)
	diet.DELETE("/:id", h.Journal.DeleteDiet)

	goals := api.Group("/goals")
	goals.GET("", h.Goal.List)
	goals.POST("", h.Goal.Create)
	goals.PUT("/:id/status", h.Goal.UpdateStatus)
	goals.DELETE("/:id", h.Goal.Delete)

	athlete := api.Group("/coaches/athletes/:athleteId", coach)
	athlete.GET("/activities", h.Activity.List)
	athlete.GET("/summary", h.Summary.Get)
	athlete.GET("/diary", h.Journal.ListDiary)
	athlete.GET("/diet", h.Journal.ListDiet)
	athlete.GET("/goals", h.Goal.List)
	athlete.GET("/training_notes", h.TrainingNote.ListForAthlete)
	athlete.POST("/training_notes", h.TrainingNote.Create)

	api.PUT("/coaches/training_notes/:noteId", coach, h.TrainingNote.Update)
	api.DELETE("/coaches/training_notes/:noteId", coach, h.TrainingNote.Delete)
}
