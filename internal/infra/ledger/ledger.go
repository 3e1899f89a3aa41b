// Package ledger stores the per reminder, per day notification markers.
package ledger

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-medication-adherence/internal/config"
	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

// New returns the ledger selected by cfg. client may be nil for the memory backend.
func New(cfg *config.LedgerConfig, client *redis.Client) (domain.NotificationDedupLedger, error) {
	switch cfg.Backend {
	case config.LedgerBackendMemory:
		return NewMemoryLedger(), nil
	case config.LedgerBackendRedis, "":
		if client == nil {
			return nil, fmt.Errorf("redis ledger: %w", config.ErrRedisAddrMissing)
		}
		return NewRedisLedger(client), nil
	default:
		return nil, config.ErrUnknownLedgerBackend
	}
}
