package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/promowebkz/deal-report-api/infrastructure/cumulative"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/amocrm"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/narrative"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/telegram"
	"github.com/promowebkz/deal-report-api/internal/api"
	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/internal/scheduler"
	"github.com/promowebkz/deal-report-api/internal/usecases/querying"
	"github.com/promowebkz/deal-report-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := cumulative.NewFileStore(cfg.Store.Path)
	exportClient := amocrm.NewClient(cfg.AmoCRM)
	narrator := narrative.NewClient(cfg.OpenAI)
	sender := telegram.NewClient(cfg.Telegram)

	reporter := reporting.NewService(cfg, exportClient, store)
	queryService := querying.NewService(store, narrator)

	dailyReportSyncService := scheduler.NewDailyReportSyncService(
		reporter,
		narrator,
		sender,
		cfg,
	)

	if err := dailyReportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the daily report scheduler")
	} else {
		logrus.Info("Daily report scheduler started")
	}

	server, err := api.New(
		cfg,
		queryService,
		reporter,
		dailyReportSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
