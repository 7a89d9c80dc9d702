package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/invoicez/internal"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "state", "invoicez.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLastSyncNeverSynced(t *testing.T) {
	s := openTestStorage(t)

	r, err := s.LastSync(context.Background(), "work")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSaveLastSync(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()
	syncedAt := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	err := s.SaveLastSync(ctx, &internal.SyncRecord{
		CalendarID: "work",
		SyncToken:  "S1",
		Events:     12,
		SyncedAt:   syncedAt,
	})
	require.NoError(t, err)

	r, err := s.LastSync(ctx, "work")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "work", r.CalendarID)
	assert.Equal(t, "S1", r.SyncToken)
	assert.Equal(t, 12, r.Events)
	assert.True(t, syncedAt.Equal(r.SyncedAt))
}

func TestSaveLastSyncReplacesPrevious(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLastSync(ctx, &internal.SyncRecord{CalendarID: "work", SyncToken: "S1", Events: 1, SyncedAt: time.Unix(100, 0)}))
	require.NoError(t, s.SaveLastSync(ctx, &internal.SyncRecord{CalendarID: "work", SyncToken: "S2", Events: 2, SyncedAt: time.Unix(200, 0)}))
	require.NoError(t, s.SaveLastSync(ctx, &internal.SyncRecord{CalendarID: "home", SyncToken: "H1", Events: 5, SyncedAt: time.Unix(300, 0)}))

	r, err := s.LastSync(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, "S2", r.SyncToken)
	assert.Equal(t, 2, r.Events)
	assert.Equal(t, int64(200), r.SyncedAt.Unix())

	r, err = s.LastSync(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "H1", r.SyncToken)
}

func TestOpenRunsMigrationsTwice(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "invoicez.db")

	s, err := Open(filename)
	require.NoError(t, err)
	require.NoError(t, s.SaveLastSync(context.Background(), &internal.SyncRecord{CalendarID: "work", SyncedAt: time.Now()}))
	require.NoError(t, s.Close())

	s, err = Open(filename)
	require.NoError(t, err)
	defer s.Close()

	r, err := s.LastSync(context.Background(), "work")
	require.NoError(t, err)
	assert.NotNil(t, r)
}
