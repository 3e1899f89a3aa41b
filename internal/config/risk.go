package config

import (
	"net/url"
	"os"
	"time"
)

const (
	riskServiceURLEnv           = "RISK_SERVICE_URL"
	riskQueueBufferEnv          = "RISK_QUEUE_BUFFER"
	riskMaxRetriesEnv           = "RISK_MAX_RETRIES"
	riskPublishTimeoutMillisEnv = "RISK_PUBLISH_TIMEOUT_MS"

	gcloudProjectIDEnv  = "GCLOUD_PROJECT_ID"
	gcloudLocationIDEnv = "GCLOUD_LOCATION_ID"
	gcloudQueueIDEnv    = "GCLOUD_QUEUE_ID"
	gcloudTasksSAEnv    = "GCLOUD_TASKS_SERVICE_ACCOUNT"

	defaultRiskQueueBuffer          = 64
	defaultRiskMaxRetries           = 3
	defaultRiskPublishTimeoutMillis = 10000
)

type RiskConfig struct {
	ServiceURL     string
	QueueBuffer    int
	MaxRetries     int
	PublishTimeout time.Duration

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string

	// GCloudServiceAccount signs the OIDC token Cloud Tasks attaches to each call.
	GCloudServiceAccount string
}

func LoadRiskConfig() *RiskConfig {
	return &RiskConfig{
		ServiceURL:     os.Getenv(riskServiceURLEnv),
		QueueBuffer:    positiveIntEnv(riskQueueBufferEnv, defaultRiskQueueBuffer),
		MaxRetries:     positiveIntEnv(riskMaxRetriesEnv, defaultRiskMaxRetries),
		PublishTimeout: time.Duration(positiveIntEnv(riskPublishTimeoutMillisEnv, defaultRiskPublishTimeoutMillis)) * time.Millisecond,

		GCloudProjectID:  os.Getenv(gcloudProjectIDEnv),
		GCloudLocationID: os.Getenv(gcloudLocationIDEnv),
		GCloudQueueID:    os.Getenv(gcloudQueueIDEnv),

		GCloudServiceAccount: os.Getenv(gcloudTasksSAEnv),
	}
}

// Enabled reports whether risk recalculation events have somewhere to go.
func (c *RiskConfig) Enabled() bool {
	return c != nil && c.ServiceURL != ""
}

// UsesCloudTasks reports whether a Cloud Tasks queue is configured.
func (c *RiskConfig) UsesCloudTasks() bool {
	return c.GCloudProjectID != "" || c.GCloudLocationID != "" || c.GCloudQueueID != ""
}

func validateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrRiskServiceURLInvalid
	}
	return nil
}
