package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseURLMissing    = errors.New("DATABASE_URL is required")
	ErrInvalidMaxOpenConns   = errors.New("DATABASE_MAX_OPEN_CONNS must be a positive integer")
	ErrUnknownLedgerBackend  = errors.New("LEDGER_BACKEND must be one of redis, memory")
	ErrRiskServiceURLInvalid = errors.New("RISK_SERVICE_URL must be an absolute http(s) URL")
)
