package mail_fx

import (
	"go.uber.org/fx"

	"runmind/internal/services"
	"runmind/pkg/config"
	"runmind/pkg/log"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config) services.IMailService {
	if !cfg.SMTP.Enabled() {
		log.Log.Warn("SMTP_HOST/SMTP_FROM not set, link notifications are only logged")
		return services.NewLogMailService()
	}
	return services.NewAsyncMailService(services.NewSMTPMailService(cfg.SMTP, cfg.AppBaseURL))
}
