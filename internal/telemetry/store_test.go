package telemetry

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, fifoCap int) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "events.db"), fifoCap)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testEvent(id string) Event {
	return Event{
		TelemetryID:    id,
		ConversationID: "conv-1",
		Kind:           KindBroadenedSearch,
		Query:          "kabaddi coach",
		ResultCount:    2,
		RecordedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

func TestRecordAndList(t *testing.T) {
	store := newTestStore(t, 10)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, testEvent("req-a")))
	require.NoError(t, store.Record(ctx, testEvent("req-b")))

	events, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "req-b", events[0].TelemetryID)
	assert.Equal(t, "req-a", events[1].TelemetryID)
	assert.Equal(t, KindBroadenedSearch, events[0].Kind)
	assert.Equal(t, "kabaddi coach", events[0].Query)
	assert.Equal(t, 2, events[0].ResultCount)
}

func TestRecordDedupesByTelemetryID(t *testing.T) {
	store := newTestStore(t, 10)
	ctx := context.Background()

	ev := testEvent("req-dup")
	require.NoError(t, store.Record(ctx, ev))

	// A replayed request must not create a second row, even with a
	// different payload.
	ev.Kind = KindLowResultCount
	ev.ResultCount = 0
	require.NoError(t, store.Record(ctx, ev))

	events, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, KindBroadenedSearch, events[0].Kind)
}

func TestRecordRejectsEmptyID(t *testing.T) {
	store := newTestStore(t, 10)
	err := store.Record(context.Background(), Event{Kind: KindLowResultCount})
	assert.Error(t, err)
}

func TestFIFOCap(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Record(ctx, testEvent(fmt.Sprintf("req-%d", i))))
	}

	events, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Oldest two were trimmed; the survivors come back newest first.
	assert.Equal(t, "req-5", events[0].TelemetryID)
	assert.Equal(t, "req-4", events[1].TelemetryID)
	assert.Equal(t, "req-3", events[2].TelemetryID)
}

func TestListLimit(t *testing.T) {
	store := newTestStore(t, 10)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		require.NoError(t, store.Record(ctx, testEvent(fmt.Sprintf("req-%d", i))))
	}

	events, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
