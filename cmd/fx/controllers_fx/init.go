package controllers_fx

import (
	"go.uber.org/fx"

	"runmind/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewLinkController),
	fx.Provide(controllers.NewActivityController),
	fx.Provide(controllers.NewSummaryController),
	fx.Provide(controllers.NewJournalController),
	fx.Provide(controllers.NewGoalController),
	fx.Provide(controllers.NewTrainingNoteController),
	fx.Provide(controllers.NewStravaController))
