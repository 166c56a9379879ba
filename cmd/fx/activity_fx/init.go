package activity_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"runmind/internal/repositories"
	"runmind/internal/services"
)

var Module = fx.Provide(
	provideActivityRepo,
	provideCommentRepo,
	provideActivityService,
	provideCommentService,
	provideSummaryRepo,
	provideSummaryService,
)

func provideActivityRepo(db *gorm.DB) repositories.ActivityRepository {
	return repositories.NewActivityRepository(db)
}

func provideCommentRepo(db *gorm.DB) repositories.CommentRepository {
	return repositories.NewCommentRepository(db)
}

func provideActivityService(activities repositories.ActivityRepository, gate services.AccessGate) services.ActivityServiceInterface {
	return services.NewActivityService(activities, gate)
}

func provideCommentService(
	comments repositories.CommentRepository,
	activities repositories.ActivityRepository,
	users repositories.UserRepository,
	gate services.AccessGate,
) services.CommentServiceInterface {
	return services.NewCommentService(comments, activities, users, gate)
}

func provideSummaryRepo(db *gorm.DB) repositories.SummaryRepository {
	return repositories.NewSummaryRepository(db)
}

func provideSummaryService(repo repositories.SummaryRepository, gate services.AccessGate) services.SummaryServiceInterface {
	return services.NewSummaryService(repo, gate)
}
