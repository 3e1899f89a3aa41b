package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	portEnv     = "PORT"
	logLevelEnv = "LOG_LEVEL"
	dotenvEnv   = "DOTENV_PATH"

	defaultPort       = "8080"
	defaultDotenvPath = ".env"
)

type Config struct {
	Port       string
	LogLevel   slog.Level
	Redis      *RedisConfig
	Database   *DatabaseConfig
	Scheduler  *SchedulerConfig
	Ledger     *LedgerConfig
	Repository *RepositoryConfig
	Risk       *RiskConfig
}

// LoadDotenv applies variables from the .env file when it exists. Variables
// already set in the environment win.
func LoadDotenv() error {
	path := os.Getenv(dotenvEnv)
	if path == "" {
		path = defaultDotenvPath
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	return nil
}

func Load() (*Config, error) {
	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	databaseConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	ledgerConfig, err := LoadLedgerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:       port,
		LogLevel:   parseLogLevel(os.Getenv(logLevelEnv)),
		Redis:      redisConfig,
		Database:   databaseConfig,
		Scheduler:  LoadSchedulerConfig(),
		Ledger:     ledgerConfig,
		Repository: LoadRepositoryConfig(),
		Risk:       LoadRiskConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
