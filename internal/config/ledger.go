package config

import (
	"os"
	"strings"
)

const (
	ledgerBackendEnv = "LEDGER_BACKEND"
)

type LedgerBackend string

const (
	LedgerBackendRedis  LedgerBackend = "redis"
	LedgerBackendMemory LedgerBackend = "memory"
)

type LedgerConfig struct {
	Backend LedgerBackend
}

func LoadLedgerConfig() (*LedgerConfig, error) {
	backend := LedgerBackend(strings.ToLower(os.Getenv(ledgerBackendEnv)))
	switch backend {
	case "":
		backend = LedgerBackendRedis
	case LedgerBackendRedis, LedgerBackendMemory:
	default:
		return nil, ErrUnknownLedgerBackend
	}

	return &LedgerConfig{Backend: backend}, nil
}
