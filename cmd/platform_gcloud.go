//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-medication-adherence/internal/config"
	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/riskqueue"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/logging"
)

func initRiskPublisher(ctx context.Context, cfg *config.Config) (domain.RiskRecalcPublisher, func() error, error) {
	if !cfg.Risk.Enabled() {
		slog.Warn("RISK_SERVICE_URL not set, risk recalculation events disabled")

		return nil, nil, nil
	}

	if !cfg.Risk.UsesCloudTasks() {
		slog.Info("risk publisher initialized",
			slog.String("type", "http"),
			slog.String("url", cfg.Risk.ServiceURL),
		)

		return riskqueue.NewHTTPPublisher(cfg.Risk.ServiceURL, cfg.Risk.MaxRetries), nil, nil
	}

	publisher, err := riskqueue.NewCloudTasksPublisher(ctx, riskqueue.CloudTasksConfig{
		ProjectID:      cfg.Risk.GCloudProjectID,
		LocationID:     cfg.Risk.GCloudLocationID,
		QueueID:        cfg.Risk.GCloudQueueID,
		TargetURL:      cfg.Risk.ServiceURL,
		ServiceAccount: cfg.Risk.GCloudServiceAccount,
		MaxRetries:     cfg.Risk.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("risk publisher initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Risk.GCloudProjectID),
		slog.String("location", cfg.Risk.GCloudLocationID),
		slog.String("queue", cfg.Risk.GCloudQueueID),
	)

	cleanup := func() error {
		if err := publisher.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return publisher, cleanup, nil
}

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "medication-adherence"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: module,
		LogLevel:      level,
	})
}
