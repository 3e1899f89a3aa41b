package ledger

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const (
	notifiedKeyPrefix = "adherence:notified:"

	// A marker only has to outlive its own calendar day; the extra day absorbs
	// clock skew between instances.
	notifiedTTL = 48 * time.Hour
)

type redisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) domain.NotificationDedupLedger {
	return &redisLedger{
		client: client,
	}
}

func notifiedKey(reminderID, date string) string {
	return notifiedKeyPrefix + reminderID + ":" + date
}

func (l *redisLedger) HasNotifiedToday(ctx context.Context, reminderID, date string) (bool, error) {
	if reminderID == "" || date == "" {
		return false, ErrInvalidKey
	}

	exists, err := l.client.Exists(ctx, notifiedKey(reminderID, date)).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

// MarkNotified claims the marker with SET NX. Only the first caller across all
// instances sharing the store sees claimed=true.
func (l *redisLedger) MarkNotified(ctx context.Context, reminderID, date string) (bool, error) {
	if reminderID == "" || date == "" {
		return false, ErrInvalidKey
	}

	return l.client.SetNX(ctx, notifiedKey(reminderID, date), 1, notifiedTTL).Result()
}
