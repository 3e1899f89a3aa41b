package domain

import "context"

//go:generate mockgen -source=dedup_ledger.go -destination=dedup_ledger_mock.go -package=domain

// NotificationDedupLedger remembers which reminders already notified on a
// given day. MarkNotified is an atomic claim: exactly one caller per reminder
// and day gets claimed=true, every later or concurrent caller gets false, even
// across processes sharing the store.
type NotificationDedupLedger interface {
	HasNotifiedToday(ctx context.Context, reminderID, date string) (bool, error)
	MarkNotified(ctx context.Context, reminderID, date string) (claimed bool, err error)
}
