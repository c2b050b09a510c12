package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/postgres/generated"
)

// ChangeDetector reports transactions recorded after a snapshot was
// written but dated on or before the snapshot day.
type ChangeDetector struct {
	queries *generated.Queries
}

// NewChangeDetector creates a new ChangeDetector.
func NewChangeDetector(db generated.DBTX) *ChangeDetector {
	return &ChangeDetector{queries: generated.New(db)}
}

// HasBackdatedChanges implements usecase.StalenessChecker.
// Only inserts are visible: the source tables carry no updated_at column.
func (d *ChangeDetector) HasBackdatedChanges(ctx context.Context, projectID string, through, since time.Time) (bool, error) {
	n, err := d.queries.CountBackdatedChanges(ctx, generated.CountBackdatedChangesParams{
		ProjectID: projectID,
		Through:   pgtype.Date{Time: domain.Day(through), Valid: true},
		Since:     timeToPgTimestamptz(since),
	})
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
