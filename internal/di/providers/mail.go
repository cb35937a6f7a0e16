package providers

import (
	"github.com/samber/do/v2"

	"github.com/tastemapapp/tastemap-server/internal/config"
	"github.com/tastemapapp/tastemap-server/internal/logger"
	"github.com/tastemapapp/tastemap-server/internal/mail"
)

// ProvideMailer provides the outbound mailer. Without SMTP configuration,
// outbound mail is logged instead of sent.
func ProvideMailer(i do.Injector) (mail.Mailer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	mailCfg := mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}

	if !mailCfg.Enabled() {
		log.Info("SMTP not configured, outbound mail will be logged")
		return mail.NewLogMailer(log.Logger), nil
	}

	log.Info("SMTP mailer configured", "host", mailCfg.Host, "from", mailCfg.From)
	return mail.NewSMTPMailer(mailCfg, log.Logger), nil
}
