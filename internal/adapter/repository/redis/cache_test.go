package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/usecase/mocks"
)

type countingStore struct {
	*mocks.MemorySnapshotStore
	latestCalls atomic.Int32
}

func (s *countingStore) LatestBefore(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error) {
	s.latestCalls.Add(1)
	return s.MemorySnapshotStore.LatestBefore(ctx, projectID, day)
}

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func snapshot(projectID, date string, balance int64) *domain.DailySnapshot {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &domain.DailySnapshot{
		ID:               "snap-" + date,
		ProjectID:        projectID,
		Date:             day(date),
		TotalIncome:      decimal.NewFromInt(balance),
		TotalExpenses:    decimal.Zero,
		RemainingBalance: decimal.NewFromInt(balance),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func newTestSnapshotCache(t *testing.T) (*SnapshotCache, *countingStore) {
	t.Helper()

	client, mr := newTestRedisClient(t)
	t.Cleanup(func() { client.Close() })
	t.Cleanup(mr.Close)

	store := &countingStore{MemorySnapshotStore: mocks.NewMemorySnapshotStore()}

	return NewSnapshotCache(client, store, time.Hour, zerolog.Nop(), nil), store
}

func TestSnapshotCache_ServesFromMirrorAfterMiss(t *testing.T) {
	cache, store := newTestSnapshotCache(t)
	ctx := context.Background()

	store.Put(snapshot("p1", "2024-01-01", 5000))
	store.Put(snapshot("p1", "2024-01-03", 4300))

	for i := 0; i < 3; i++ {
		got, err := cache.LatestBefore(ctx, "p1", day("2024-01-03"))
		if err != nil {
			t.Fatalf("LatestBefore failed: %v", err)
		}
		if domain.FormatDate(got.Date) != "2024-01-01" {
			t.Fatalf("expected 2024-01-01, got %s", domain.FormatDate(got.Date))
		}
		if !got.RemainingBalance.Equal(decimal.NewFromInt(5000)) {
			t.Fatalf("unexpected balance %s", got.RemainingBalance)
		}
	}

	if calls := store.latestCalls.Load(); calls != 1 {
		t.Fatalf("expected one store read, got %d", calls)
	}
}

func TestSnapshotCache_MirrorsAbsence(t *testing.T) {
	cache, store := newTestSnapshotCache(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := cache.LatestBefore(ctx, "empty", day("2024-01-03"))
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	}

	if calls := store.latestCalls.Load(); calls != 1 {
		t.Fatalf("expected one store read, got %d", calls)
	}
}

func TestSnapshotCache_SaveInvalidates(t *testing.T) {
	cache, _ := newTestSnapshotCache(t)
	ctx := context.Background()

	if _, err := cache.Save(ctx, snapshot("p1", "2024-01-01", 5000)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := cache.LatestBefore(ctx, "p1", day("2024-01-03")); err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}

	if _, err := cache.Save(ctx, snapshot("p1", "2024-01-02", 3800)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := cache.LatestBefore(ctx, "p1", day("2024-01-03"))
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if domain.FormatDate(got.Date) != "2024-01-02" {
		t.Fatalf("expected refreshed snapshot 2024-01-02, got %s", domain.FormatDate(got.Date))
	}
}

func TestSnapshotCache_DeleteFromInvalidates(t *testing.T) {
	cache, store := newTestSnapshotCache(t)
	ctx := context.Background()

	store.Put(snapshot("p1", "2024-01-01", 5000))
	store.Put(snapshot("p1", "2024-01-02", 3800))

	if _, err := cache.LatestBefore(ctx, "p1", day("2024-01-03")); err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}

	n, err := cache.DeleteFrom(ctx, "p1", day("2024-01-02"))
	if err != nil || n != 1 {
		t.Fatalf("DeleteFrom: n=%d err=%v", n, err)
	}

	got, err := cache.LatestBefore(ctx, "p1", day("2024-01-03"))
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if domain.FormatDate(got.Date) != "2024-01-01" {
		t.Fatalf("expected 2024-01-01 after delete, got %s", domain.FormatDate(got.Date))
	}
}

func TestSnapshotCache_RedisDownFallsBackToStore(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	store := &countingStore{MemorySnapshotStore: mocks.NewMemorySnapshotStore()}
	store.Put(snapshot("p1", "2024-01-01", 5000))
	cache := NewSnapshotCache(client, store, time.Hour, zerolog.Nop(), nil)

	mr.Close()

	got, err := cache.LatestBefore(context.Background(), "p1", day("2024-01-02"))
	if err != nil {
		t.Fatalf("expected fallback to store, got %v", err)
	}
	if !got.RemainingBalance.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected balance %s", got.RemainingBalance)
	}
}

func TestSnapshotCache_WritesSucceedWhenRedisClosed(t *testing.T) {
	cache, store := newTestSnapshotCache(t)
	ctx := context.Background()

	store.Put(snapshot("p1", "2024-01-01", 5000))
	cache.client.Close()

	deleted, err := cache.Delete(ctx, "p1", day("2024-01-01"))
	if err != nil {
		t.Fatalf("Delete should succeed when the store does, got %v", err)
	}
	if !deleted {
		t.Fatalf("expected the stored row to be reported deleted")
	}
	if _, ok := store.Get("p1", day("2024-01-01")); ok {
		t.Fatalf("expected row removed from store")
	}

	if _, err := cache.Save(ctx, snapshot("p1", "2024-01-02", 3800)); err != nil {
		t.Fatalf("Save should succeed when the store does, got %v", err)
	}

	got, err := cache.LatestBefore(ctx, "p1", day("2024-01-03"))
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if domain.FormatDate(got.Date) != "2024-01-02" {
		t.Fatalf("expected store snapshot 2024-01-02, got %s", domain.FormatDate(got.Date))
	}
}

func TestSnapshotCache_FailedInvalidationNeverServesStaleMirror(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := &countingStore{MemorySnapshotStore: mocks.NewMemorySnapshotStore()}
	store.Put(snapshot("p1", "2024-01-01", 5000))
	store.Put(snapshot("p1", "2024-01-02", 3800))
	cache := NewSnapshotCache(client, store, time.Hour, zerolog.Nop(), nil)
	ctx := context.Background()

	// Load the mirror with both days.
	if _, err := cache.LatestBefore(ctx, "p1", day("2024-01-03")); err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}

	mr.SetError("LOADING Redis is loading the dataset in memory")
	n, err := cache.DeleteFrom(ctx, "p1", day("2024-01-02"))
	if err != nil || n != 1 {
		t.Fatalf("DeleteFrom: n=%d err=%v", n, err)
	}

	// While Redis still fails, reads go to the store.
	got, err := cache.LatestBefore(ctx, "p1", day("2024-01-03"))
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if domain.FormatDate(got.Date) != "2024-01-01" {
		t.Fatalf("expected 2024-01-01 from store, got %s", domain.FormatDate(got.Date))
	}

	// Once Redis recovers the old mirror, which still holds 2024-01-02,
	// is dropped before it can be read.
	mr.SetError("")
	got, err = cache.LatestBefore(ctx, "p1", day("2024-01-03"))
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if domain.FormatDate(got.Date) != "2024-01-01" {
		t.Fatalf("expected 2024-01-01 after recovery, got %s", domain.FormatDate(got.Date))
	}
	if _, dirty := cache.dirty.Load("p1"); dirty {
		t.Fatalf("expected project to be clean after recovery")
	}
}
