package syncer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/guilherme-santos/invoicez/internal"
)

type (
	Calendar   = internal.Calendar
	Event      = internal.Event
	SyncRecord = internal.SyncRecord
)

// Selector resolves the calendar to sync, asking the operator if needed.
type Selector interface {
	GetSelected(context.Context) (string, error)
}

type EventLister interface {
	Events(_ context.Context, calendarID string) ([]*Event, string, error)
}

// Storage keeps the outcome of the last sync of every calendar.
type Storage interface {
	LastSync(_ context.Context, calendarID string) (*SyncRecord, error)
	SaveLastSync(context.Context, *SyncRecord) error
}

type Syncer struct {
	output   io.Writer
	logger   *slog.Logger
	selector Selector
	events   EventLister
	storage  Storage
	now      func() time.Time
}

// New returns a Syncer. storage may be nil, then no history is kept.
func New(output io.Writer, logger *slog.Logger, selector Selector, events EventLister, storage Storage) *Syncer {
	if output == nil {
		output = os.Stdout
	}
	if logger == nil {
		logger = internal.DiscardLogger()
	}
	return &Syncer{
		output:   output,
		logger:   logger,
		selector: selector,
		events:   events,
		storage:  storage,
		now:      time.Now,
	}
}

// Sync fetches every event of the selected calendar and reports them. Nothing
// is returned if any page fails.
func (s Syncer) Sync(ctx context.Context) ([]*Event, error) {
	calID, err := s.selector.GetSelected(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve the selected calendar: %w", err)
	}
	cal := &Calendar{ID: calID}

	s.reportPrevious(ctx, cal)

	events, syncToken, err := s.events.Events(ctx, calID)
	if err != nil {
		return nil, err
	}

	logf(s.output, cal, "%d event(s) retrieved, sync token: %s", len(events), syncToken)
	for _, e := range events {
		fmt.Fprintln(s.output, e)
	}

	if s.storage != nil {
		err := s.storage.SaveLastSync(ctx, &SyncRecord{
			CalendarID: calID,
			SyncToken:  syncToken,
			Events:     len(events),
			SyncedAt:   s.now(),
		})
		if err != nil {
			s.logger.Warn("Unable to save last sync", internal.CalendarID(calID), internal.Err(err))
		}
	}
	return events, nil
}

func (s Syncer) reportPrevious(ctx context.Context, cal *Calendar) {
	if s.storage == nil {
		return
	}
	prev, err := s.storage.LastSync(ctx, cal.ID)
	if err != nil {
		s.logger.Warn("Unable to read last sync", internal.CalendarID(cal.ID), internal.Err(err))
		return
	}
	if prev == nil {
		logf(s.output, cal, "First sync")
		return
	}
	logf(s.output, cal, "Last synced on %s, %d event(s)", internal.FormatDateTime(prev.SyncedAt), prev.Events)
}
