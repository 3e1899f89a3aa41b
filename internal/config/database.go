package config

import (
	"os"
	"strconv"
)

const (
	databaseURLEnv          = "DATABASE_URL"
	databaseMaxOpenConnsEnv = "DATABASE_MAX_OPEN_CONNS"
	databaseAutoMigrateEnv  = "DATABASE_AUTO_MIGRATE"

	defaultDatabaseMaxOpenConns = 10
)

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	AutoMigrate  bool
}

func LoadDatabaseConfig() (*DatabaseConfig, error) {
	maxOpen := defaultDatabaseMaxOpenConns
	if raw := os.Getenv(databaseMaxOpenConnsEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidMaxOpenConns
		}
		maxOpen = parsed
	}

	return &DatabaseConfig{
		URL:          os.Getenv(databaseURLEnv),
		MaxOpenConns: maxOpen,
		AutoMigrate:  os.Getenv(databaseAutoMigrateEnv) != "false",
	}, nil
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.URL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}
