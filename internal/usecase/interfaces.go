package usecase

import (
	"context"
	"time"

	"github.com/ayemen27/siteledger/internal/domain"
)

// TransactionSource reads one transaction stream for a project.
type TransactionSource interface {
	Kind() domain.SourceKind
	SumForProject(ctx context.Context, projectID string, filter domain.Filter) (domain.SourceTotals, error)
}

// SnapshotStore defines data access for daily snapshots.
type SnapshotStore interface {
	// LatestBefore returns the newest snapshot dated strictly before day,
	// or domain.ErrSnapshotNotFound.
	LatestBefore(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error)
	Save(ctx context.Context, snapshot *domain.DailySnapshot) (*domain.DailySnapshot, error)
	Delete(ctx context.Context, projectID string, day time.Time) (bool, error)
	// DeleteFrom removes every snapshot dated on or after day.
	DeleteFrom(ctx context.Context, projectID string, day time.Time) (int64, error)
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.DailySnapshot, error)
}

// ProjectRepository defines read access for projects.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// ListActive returns active projects ordered by creation time.
	ListActive(ctx context.Context) ([]*domain.Project, error)
}

// StalenessChecker detects transactions recorded after a snapshot was
// written but dated on or before it.
type StalenessChecker interface {
	HasBackdatedChanges(ctx context.Context, projectID string, through, since time.Time) (bool, error)
}

// EventPublisher publishes ledger events.
type EventPublisher interface {
	PublishSnapshotSaved(ctx context.Context, event domain.SnapshotSavedEvent) error
}

// Retrier retries transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// JobLocker runs fn while holding a named lock shared by all replicas.
// It returns ErrLockHeld when another replica holds the lock.
type JobLocker interface {
	Run(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error
}
