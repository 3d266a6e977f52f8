package main

import (
	"context"
	"flag"

	"patilog/internal/adapters/mail/ses"
	"patilog/internal/adapters/mail/smtp"
	"patilog/internal/adapters/storage"
	"patilog/internal/config"
	"patilog/internal/domain/notify"
	"patilog/internal/platform/logger"
	mailport "patilog/internal/ports/mail"

	"github.com/robfig/cron/v3"
)

// The notifier is a scheduled job: by default it runs one pass and exits,
// which is what a CI cron or systemd timer wants. -daemon keeps the process
// alive and runs on the configured cron spec instead.
func main() {
	daemon := flag.Bool("daemon", false, "stay up and run on NOTIFIER_CRON instead of once")
	flag.Parse()

	cfg := config.MustLoad()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName + "-notifier",
	})

	ctx := context.Background()

	repo, err := storage.NewRepository(ctx, cfg)
	if err != nil {
		log.Error("storage init failed", map[string]any{"err": err.Error()})
		return
	}

	transport, err := newTransport(ctx, cfg)
	if err != nil {
		log.Error("mail transport init failed", map[string]any{"err": err.Error()})
		return
	}

	svc := notify.NewService(repo, transport, log, notify.Options{
		Recipients:    cfg.Recipients(),
		LookaheadDays: cfg.LookaheadDays,
		ReminderHour:  cfg.ReminderHour,
	})

	if !*daemon {
		svc.Run(ctx)
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.NotifierCron, func() { svc.Run(ctx) }); err != nil {
		log.Error("bad cron spec", map[string]any{"spec": cfg.NotifierCron, "err": err.Error()})
		return
	}
	log.Info("notifier daemon started", map[string]any{"cron": cfg.NotifierCron})
	c.Run()
}

func newTransport(ctx context.Context, cfg *config.Config) (mailport.Transport, error) {
	if cfg.MailProvider == "ses" {
		return ses.New(ctx, cfg.AWSRegion, cfg.EmailUser)
	}
	return smtp.New(smtp.Options{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		From:     cfg.EmailUser,
	})
}
