package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		portEnv, logLevelEnv, redisAddrEnv, redisDBEnv, databaseURLEnv, databaseMaxOpenConnsEnv,
		schedulerTickSecondsEnv, actionWindowMinutesEnv, autoDismissSecondsEnv, ledgerBackendEnv,
		repositoryTimeoutMillisEnv, riskServiceURLEnv, riskQueueBufferEnv,
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.Scheduler.TickInterval != time.Minute {
		t.Errorf("TickInterval = %v, want 1m", cfg.Scheduler.TickInterval)
	}
	if cfg.Scheduler.ActionWindowMinutes != 30 {
		t.Errorf("ActionWindowMinutes = %d, want 30", cfg.Scheduler.ActionWindowMinutes)
	}
	if cfg.Scheduler.AutoDismiss != 10*time.Second {
		t.Errorf("AutoDismiss = %v, want 10s", cfg.Scheduler.AutoDismiss)
	}
	if cfg.Ledger.Backend != LedgerBackendRedis {
		t.Errorf("Ledger.Backend = %q, want redis", cfg.Ledger.Backend)
	}
	if cfg.Repository.Timeout != 5*time.Second {
		t.Errorf("Repository.Timeout = %v, want 5s", cfg.Repository.Timeout)
	}
	if cfg.Risk.Enabled() {
		t.Error("Risk.Enabled() = true without RISK_SERVICE_URL")
	}
	if cfg.Risk.QueueBuffer != defaultRiskQueueBuffer {
		t.Errorf("Risk.QueueBuffer = %d, want %d", cfg.Risk.QueueBuffer, defaultRiskQueueBuffer)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "invalid redis db",
			env:     map[string]string{redisDBEnv: "zero"},
			wantErr: ErrInvalidRedisDB,
		},
		{
			name:    "invalid max open conns",
			env:     map[string]string{databaseMaxOpenConnsEnv: "-1"},
			wantErr: ErrInvalidMaxOpenConns,
		},
		{
			name:    "unknown ledger backend",
			env:     map[string]string{ledgerBackendEnv: "sqlite"},
			wantErr: ErrUnknownLedgerBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPositiveIntEnvFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 60},
		{name: "valid", value: "15", want: 15},
		{name: "zero", value: "0", want: 60},
		{name: "garbage", value: "soon", want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(schedulerTickSecondsEnv, tt.value)

			if got := positiveIntEnv(schedulerTickSecondsEnv, 60); got != tt.want {
				t.Errorf("positiveIntEnv() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	base := func() *Config {
		return &Config{
			Redis:    &RedisConfig{Addr: "localhost:6379"},
			Database: &DatabaseConfig{URL: "postgres://localhost/adherence"},
			Ledger:   &LedgerConfig{Backend: LedgerBackendRedis},
			Risk:     &RiskConfig{},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: ErrDatabaseURLMissing,
		},
		{
			name:    "redis ledger without addr",
			mutate:  func(c *Config) { c.Redis.Addr = "" },
			wantErr: ErrRedisAddrMissing,
		},
		{
			name: "memory ledger ignores redis",
			mutate: func(c *Config) {
				c.Redis.Addr = ""
				c.Ledger.Backend = LedgerBackendMemory
			},
		},
		{
			name:    "relative risk url",
			mutate:  func(c *Config) { c.Risk.ServiceURL = "/recalculate" },
			wantErr: ErrRiskServiceURLInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := ValidateForRun(cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateForRun() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateForRun() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		t.Setenv(dotenvEnv, filepath.Join(t.TempDir(), "absent.env"))

		if err := LoadDotenv(); err != nil {
			t.Errorf("LoadDotenv() error = %v", err)
		}
	})

	t.Run("file values do not override environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("PORT=9090\nLEDGER_BACKEND=memory\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(dotenvEnv, path)
		t.Setenv(portEnv, "7070")
		t.Setenv(ledgerBackendEnv, "")
		os.Unsetenv(ledgerBackendEnv)
		t.Cleanup(func() { os.Unsetenv(ledgerBackendEnv) })

		if err := LoadDotenv(); err != nil {
			t.Fatalf("LoadDotenv() error = %v", err)
		}

		if got := os.Getenv(portEnv); got != "7070" {
			t.Errorf("PORT = %q, want 7070", got)
		}
		if got := os.Getenv(ledgerBackendEnv); got != "memory" {
			t.Errorf("LEDGER_BACKEND = %q, want memory", got)
		}
	})
}
