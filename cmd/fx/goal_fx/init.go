package goal_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"runmind/internal/repositories"
	"runmind/internal/services"
)

// Module provides goals and the coach training notes.
var Module = fx.Provide(
	provideGoalRepo,
	provideTrainingNoteRepo,
	services.NewGoalService,
	services.NewTrainingNoteService,
)

func provideGoalRepo(db *gorm.DB) repositories.GoalRepository {
	return repositories.NewGoalRepository(db)
}

func provideTrainingNoteRepo(db *gorm.DB) repositories.TrainingNoteRepository {
	return repositories.NewTrainingNoteRepository(db)
}
