package link_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"runmind/internal/repositories"
	"runmind/internal/services"
)

var Module = fx.Provide(
	provideLinkRepo, provideAccessGate, provideLinkService)

func provideLinkRepo(db *gorm.DB) repositories.LinkRepository {
	return repositories.NewLinkRepository(db)
}

func provideAccessGate(users repositories.UserRepository, links repositories.LinkRepository) services.AccessGate {
	return services.NewAccessGate(users, links)
}

func provideLinkService(links repositories.LinkRepository, users repositories.UserRepository, mailer services.IMailService) services.LinkServiceInterface {
	return services.NewLinkService(links, users, mailer)
}
