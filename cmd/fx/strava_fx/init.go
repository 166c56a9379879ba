package strava_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"runmind/internal/repositories"
	"runmind/internal/services"
	"runmind/pkg/config"
	"runmind/pkg/log"
	mem "runmind/pkg/memcache"
	"runmind/pkg/utils"
)

var Module = fx.Provide(
	provideStravaClient, provideStravaTokenRepo, provideStravaService)

// provideStravaClient returns nil when no Strava app is configured.
func provideStravaClient(cfg *config.Config) services.StravaClient {
	if !cfg.Strava.Enabled() {
		log.Log.Warn("STRAVA_CLIENT_ID/STRAVA_CLIENT_SECRET not set, strava integration disabled")
		return nil
	}
	return services.NewStravaClient(cfg.Strava)
}

func provideStravaTokenRepo(db *gorm.DB) repositories.StravaTokenRepository {
	return repositories.NewStravaTokenRepository(db)
}

func provideStravaService(
	client services.StravaClient,
	users repositories.UserRepository,
	tokens repositories.StravaTokenRepository,
	activities repositories.ActivityRepository,
	states mem.OAuthStateStore,
	jwt *utils.TokenManager,
) services.StravaServiceInterface {
	return services.NewStravaService(client, users, tokens, activities, states, jwt)
}
