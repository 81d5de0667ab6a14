package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/mailer"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL must be set for the mailer worker")
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}
	defer client.Close()

	sender := mailer.NewSMTPMailer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("mailer worker started", "queue", cfg.AMQPQueue)

	err = client.ConsumeNotifications(ctx, func(msg *amqp.NotificationMessage) error {
		switch msg.Kind {
		case amqp.NotificationUserCreated:
			return sender.Send(msg.Email, "Welcome to Our Platform", mailer.WelcomeBody(msg.Name))
		case amqp.NotificationPasswordChanged:
			return sender.Send(msg.Email, "Password Update Notification", mailer.PasswordChangedBody(msg.Name))
		default:
			log.Warnw("skipping notification with unknown kind", "kind", msg.Kind)
			return nil
		}
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("consume loop failed: %w", err)
	}

	log.Info("mailer worker stopped")
	return nil
}
