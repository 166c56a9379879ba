package config_fx

import (
	"go.uber.org/fx"

	"runmind/pkg/config"
	"runmind/pkg/log"
	"runmind/pkg/utils"
)

var Module = fx.Provide(provideConfig, provideTokenManager)

func provideConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log.Init(cfg.Env, cfg.LogLevel)
	return cfg, nil
}

func provideTokenManager(cfg *config.Config) (*utils.TokenManager, error) {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}
