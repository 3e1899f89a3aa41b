package adherencerecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID         string
	BigQueryDataset           string
	BigQueryAdherenceTable    string
	BigQueryNotificationTable string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("ADHERENCE_EVENTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "adherence_events"),

		BigQueryProjectID:         getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:           getEnvOrDefault("BIGQUERY_DATASET", "adherence_events"),
		BigQueryAdherenceTable:    getEnvOrDefault("BIGQUERY_ADHERENCE_TABLE", "adherence_records"),
		BigQueryNotificationTable: getEnvOrDefault("BIGQUERY_NOTIFICATION_TABLE", "notification_dispatches"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
