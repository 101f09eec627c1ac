package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ercot_spp_notify/internal/cloud"
	"ercot_spp_notify/internal/config"
	"ercot_spp_notify/internal/handlers"
	"ercot_spp_notify/internal/notify"
	"ercot_spp_notify/internal/report"
	"ercot_spp_notify/internal/scrape"
	"ercot_spp_notify/internal/subscribers"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "sppnotify").Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	logger = configureLogger(logger, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logger.WithContext(ctx)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("sentry disabled")
		}
		defer sentry.Flush(2 * time.Second)
	}

	deps, err := buildDeps(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to set up clients")
		return 1
	}

	res, err := handlers.Run(ctx, deps)
	if err != nil {
		sentry.CaptureException(err)
		logger.Error().Err(err).Msg("run aborted")
		return 1
	}

	if res.PipelineErr != nil {
		sentry.CaptureException(res.PipelineErr)
	}
	if res.DeliveryErr != nil {
		sentry.CaptureException(res.DeliveryErr)
		logger.Error().Err(res.DeliveryErr).Msg("delivery incomplete")
		return 1
	}

	logger.Info().Bool("fallback", res.Fallback).Int("sent", res.Delivery.Sent).Str("url", res.URL).Msg("run complete")
	return 0
}

func configureLogger(logger zerolog.Logger, cfg config.Config) zerolog.Logger {
	if cfg.LogFormat == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func buildDeps(cfg config.Config) (handlers.Deps, error) {
	deps := handlers.Deps{
		Locator:     scrape.NewLocator(cfg.SourceBaseURL, cfg.Location),
		Fetcher:     scrape.NewFetcher(cfg.SourceTimeout),
		Subscribers: subscribers.NewFileStore(cfg.SubscribersFile),
		Zones:       report.CuratedZones,
	}

	var sess *session.Session
	if cfg.UsesAWS() {
		s, err := cloud.NewSession(cfg.AWS)
		if err != nil {
			return handlers.Deps{}, err
		}
		sess = s
	}

	if cfg.SubscribersTable != "" {
		deps.Subscribers = subscribers.NewDynamoStore(dynamodb.New(sess), cfg.SubscribersTable)
	}
	if cfg.SQSQueueURL != "" {
		deps.Publisher = handlers.NewSQSPublisher(sqs.New(sess), cfg.SQSQueueURL, cfg.ServiceName)
	}

	var sender notify.Sender
	switch cfg.NotifyProvider {
	case config.ProviderSNS:
		sender = notify.NewSNSSender(sns.New(sess), cfg.SNSSenderID)
	default:
		sender = notify.NewTwilioSender(cfg.Twilio)
	}
	deps.Notifier = notify.NewNotifier(sender)

	return deps, nil
}
