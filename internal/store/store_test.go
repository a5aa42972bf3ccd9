package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cutetime/internal/cutetime"
	appErrors "cutetime/internal/errors"
	"cutetime/internal/timeparse"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var _ cutetime.Item = (*Item)(nil)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "items.db")
	s, err := Open(context.Background(), path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.True(t, appErrors.IsCode(err, appErrors.CodeStoreFailed), "got %v", err)
}

func TestAddListGet(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC))
	s := openTestStore(t, WithClock(clock))
	ctx := context.Background()

	first, err := s.Add(ctx, " deploy ", "2025-12-24T08:00:00Z")
	require.NoError(t, err)
	second, err := s.Add(ctx, "", "sometime")
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)
	require.Equal(t, "deploy", first.Label)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "deploy", items[0].Title())
	require.Equal(t, "sometime", items[1].Title())
	require.Equal(t, "2025-12-25T12:00:00Z", items[0].CreatedAt)

	clock.Advance(90 * time.Minute)
	third, err := s.Add(ctx, "", "later")
	require.NoError(t, err)
	require.Equal(t, "2025-12-25T13:30:00Z", third.CreatedAt)

	_, ok := items[0].Origin()
	require.False(t, ok, "new items have no origin")

	got, err := s.Get(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, "sometime", got.Text())
}

func TestGetDeleteMissing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, 42)
	require.True(t, appErrors.IsCode(err, appErrors.CodeNotFound), "got %v", err)
	require.True(t, appErrors.IsCode(s.Delete(ctx, 42), appErrors.CodeNotFound))
	require.True(t, appErrors.IsCode(s.ClearOrigin(ctx, 42), appErrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item, err := s.Add(ctx, "", "x")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, item.ID))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSaveOriginsWritesOnlyDirty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "", "2025-12-24T08:00:00Z")
	require.NoError(t, err)
	_, err = s.Add(ctx, "", "loading")
	require.NoError(t, err)

	items, err := s.List(ctx)
	require.NoError(t, err)

	n, err := s.SaveOrigins(ctx, items)
	require.NoError(t, err)
	require.Zero(t, n, "untouched items are not written")

	items[1].SetOrigin("2025-12-25T12:00:00.000Z")
	require.True(t, items[1].Dirty())
	require.False(t, items[0].Dirty())

	n, err = s.SaveOrigins(ctx, items)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.False(t, items[1].Dirty())

	reloaded, err := s.Get(ctx, items[1].ID)
	require.NoError(t, err)
	origin, ok := reloaded.Origin()
	require.True(t, ok)
	require.Equal(t, "2025-12-25T12:00:00.000Z", origin)

	reloaded.SetOrigin(origin)
	require.False(t, reloaded.Dirty(), "rewriting the same origin is not a change")
}

func TestClearOrigin(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item, err := s.Add(ctx, "", "loading")
	require.NoError(t, err)
	item.SetOrigin("2025-12-25T12:00:00.000Z")
	_, err = s.SaveOrigins(ctx, []*Item{item})
	require.NoError(t, err)

	require.NoError(t, s.ClearOrigin(ctx, item.ID))
	got, err := s.Get(ctx, item.ID)
	require.NoError(t, err)
	_, ok := got.Origin()
	require.False(t, ok)
}

func TestTrackerPinsStoredOrigins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "build", "queued")
	require.NoError(t, err)
	_, err = s.Add(ctx, "", "2025-12-25T09:00:00Z")
	require.NoError(t, err)

	start := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)

	load := func() []*Item {
		items, err := s.List(ctx)
		require.NoError(t, err)
		return items
	}
	asTracked := func(items []*Item) []cutetime.Item {
		out := make([]cutetime.Item, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out
	}

	items := load()
	_, err = cutetime.Bind(cutetime.DefaultConfig(), asTracked(items),
		cutetime.WithClock(clock), cutetime.WithParser(timeparse.New(time.UTC)))
	require.NoError(t, err)
	require.Equal(t, "just now", items[0].Phrase)
	require.Equal(t, "3 hours ago", items[1].Phrase)

	n, err := s.SaveOrigins(ctx, items)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	clock.Advance(5 * time.Minute)
	items = load()
	_, err = cutetime.Bind(cutetime.DefaultConfig(), asTracked(items),
		cutetime.WithClock(clock), cutetime.WithParser(timeparse.New(time.UTC)))
	require.NoError(t, err)
	require.Equal(t, "5 minutes ago", items[0].Phrase)
}
