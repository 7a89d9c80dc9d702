package sqlite

import (
	"time"

	"github.com/guilherme-santos/invoicez/internal"
)

type SyncRecord struct {
	CalendarID string `db:"calendar_id"`
	SyncToken  string `db:"sync_token"`
	Events     int
	SyncedAt   int64 `db:"synced_at"`
}

func (r SyncRecord) Convert() *internal.SyncRecord {
	return &internal.SyncRecord{
		CalendarID: r.CalendarID,
		SyncToken:  r.SyncToken,
		Events:     r.Events,
		SyncedAt:   time.Unix(r.SyncedAt, 0).UTC(),
	}
}
