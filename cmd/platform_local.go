//go:build !gcloud

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

func initRiskPublisher(_ context.Context, cfg *config.Config) (domain.RiskRecalcPublisher, func() error, error) {
	if !cfg.Risk.Enabled() {
		slog.Warn("RISK_SERVICE_URL not set, risk recalculation events disabled")

		return nil, nil, nil
	}

	publisher := riskqueue.NewHTTPPublisher(cfg.Risk.ServiceURL, cfg.Risk.MaxRetries)

	slog.Info("risk publisher initialized",
		slog.String("type", "http"),
		slog.String("url", cfg.Risk.ServiceURL),
	)

	return publisher, nil, nil
}

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "medication-adherence"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: module,
		LogLevel:      level,
	})
}
