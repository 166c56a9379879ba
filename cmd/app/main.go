package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"runmind/cmd/fx/account_fx"
	"runmind/cmd/fx/activity_fx"
	"runmind/cmd/fx/config_fx"
	"runmind/cmd/fx/controllers_fx"
	"runmind/cmd/fx/db_fx"
	"runmind/cmd/fx/goal_fx"
	"runmind/cmd/fx/journal_fx"
	"runmind/cmd/fx/link_fx"
	"runmind/cmd/fx/mail_fx"
	"runmind/cmd/fx/memcache_fx"
	"runmind/cmd/fx/strava_fx"
	"runmind/pkg/config"
	"runmind/pkg/log"
	"runmind/pkg/middleware"
)

func main() {
	config.LoadDotEnvs()

	app := fx.New(
		fx.NopLogger,
		config_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		link_fx.Module,
		activity_fx.Module,
		journal_fx.Module,
		goal_fx.Module,
		strava_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Log.Infof("Starting HTTP server at :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Log.WithError(err).Fatal("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, h)

	return r
}
