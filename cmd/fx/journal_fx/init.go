package journal_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"runmind/internal/repositories"
	"runmind/internal/services"
)

var Module = fx.Provide(
	func(db *gorm.DB) repositories.DiaryRepository { return repositories.NewDiaryRepository(db) },
	func(db *gorm.DB) repositories.DietRepository { return repositories.NewDietRepository(db) },
	services.NewDiaryService,
	services.NewDietService,
)
