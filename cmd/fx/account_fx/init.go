package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"runmind/internal/repositories"
	"runmind/internal/services"
	mem "runmind/pkg/memcache"
	"runmind/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(
	users repositories.UserRepository,
	tokens *utils.TokenManager,
	resets mem.ResetTokenStore,
	mailer services.IMailService,
) services.AccountServiceInterface {
	return services.NewAccountService(users, tokens, resets, mailer)
}
