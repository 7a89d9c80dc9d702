package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/invoicez/internal"
)

// Client reads calendars and events from Google Calendar.
type Client struct {
	svc    *calendar.Service
	logger *slog.Logger
}

var _ internal.Provider = (*Client)(nil)

// NewClient builds a client authenticated by ts, usually
// CredentialStore.TokenSource. Extra options are applied after the
// authenticated HTTP client.
func NewClient(ctx context.Context, ts oauth2.TokenSource, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if ts == nil {
		return nil, errors.New("google: token source cannot be nil")
	}
	if logger == nil {
		logger = internal.DiscardLogger()
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service: %w", err)
	}
	return &Client{
		svc:    svc,
		logger: logger,
	}, nil
}

func (c Client) Calendars(ctx context.Context) ([]*internal.Calendar, error) {
	entries, _, err := FetchAll(ctx, func(ctx context.Context, pageToken string) (*Page[*calendar.CalendarListEntry], error) {
		call := c.svc.CalendarList.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			c.logAPIError("calendarList.list", err)
			return nil, err
		}
		c.logger.Debug("Fetched calendar list page",
			slog.Int("items", len(res.Items)),
			slog.Bool("last", res.NextSyncToken != ""))
		return &Page[*calendar.CalendarListEntry]{
			Items:         res.Items,
			NextPageToken: res.NextPageToken,
			NextSyncToken: res.NextSyncToken,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("google: listing calendars: %w", err)
	}

	cals := make([]*internal.Calendar, len(entries))
	for i, e := range entries {
		cals[i] = &internal.Calendar{
			ID:   e.Id,
			Name: e.Summary,
		}
	}
	return cals, nil
}

func (c Client) Events(ctx context.Context, calendarID string) ([]*internal.Event, string, error) {
	items, syncToken, err := FetchAll(ctx, func(ctx context.Context, pageToken string) (*Page[*calendar.Event], error) {
		call := c.svc.Events.List(calendarID).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			c.logAPIError("events.list", err)
			return nil, err
		}
		c.logger.Debug("Fetched events page",
			internal.CalendarID(calendarID),
			slog.Int("items", len(res.Items)),
			slog.Bool("last", res.NextSyncToken != ""))
		return &Page[*calendar.Event]{
			Items:         res.Items,
			NextPageToken: res.NextPageToken,
			NextSyncToken: res.NextSyncToken,
		}, nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("google: listing events of %s: %w", calendarID, err)
	}

	events := make([]*internal.Event, len(items))
	for i, item := range items {
		events[i] = newEvent(item)
	}
	return events, syncToken, nil
}

func (c Client) logAPIError(method string, err error) {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		c.logger.Debug("Request failed", slog.String("method", method), internal.Err(err))
		return
	}
	attrs := []any{
		slog.String("method", method),
		slog.Int("status", gErr.Code),
	}
	if reason := errReason(gErr); reason != "" {
		attrs = append(attrs, slog.String("reason", reason))
	}
	c.logger.Debug("Request failed", attrs...)
}

func errReason(gErr *googleapi.Error) string {
	for _, item := range gErr.Errors {
		if item.Reason != "" {
			return item.Reason
		}
	}
	return ""
}

func newEvent(event *calendar.Event) *internal.Event {
	return &internal.Event{
		Summary:     optional(event.Summary),
		Start:       eventTime(event.Start),
		End:         eventTime(event.End),
		Description: optional(event.Description),
	}
}

// eventTime prefers the timestamp of timed events and falls back to the date
// of all-day events.
func eventTime(t *calendar.EventDateTime) *string {
	if t == nil {
		return nil
	}
	if t.DateTime != "" {
		return optional(t.DateTime)
	}
	if t.Date == "" {
		return nil
	}
	d, err := internal.Parse(internal.DateFormat, t.Date)
	if err != nil {
		return optional(t.Date)
	}
	return optional(d.String())
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
