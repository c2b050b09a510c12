package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/postgres/generated"
)

// SnapshotRepository implements usecase.SnapshotStore over daily_expense_summaries.
type SnapshotRepository struct {
	queries *generated.Queries
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(db generated.DBTX) *SnapshotRepository {
	return &SnapshotRepository{queries: generated.New(db)}
}

// LatestBefore returns the newest snapshot dated strictly before day.
func (r *SnapshotRepository) LatestBefore(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error) {
	row, err := r.queries.GetLatestSnapshotBefore(ctx, generated.GetLatestSnapshotBeforeParams{
		ProjectID: projectID,
		Date:      domain.FormatDate(day),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}

		return nil, err
	}

	return rowToSnapshot(row)
}

// Save inserts the snapshot or replaces the one already stored for its day.
func (r *SnapshotRepository) Save(ctx context.Context, s *domain.DailySnapshot) (*domain.DailySnapshot, error) {
	row, err := r.queries.UpsertSnapshot(ctx, generated.UpsertSnapshotParams{
		ID:               s.ID,
		ProjectID:        s.ProjectID,
		Date:             domain.FormatDate(s.Date),
		TotalIncome:      decimalToNumeric(s.TotalIncome),
		TotalExpenses:    decimalToNumeric(s.TotalExpenses),
		RemainingBalance: decimalToNumeric(s.RemainingBalance),
		CreatedAt:        timeToPgTimestamptz(s.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(s.UpdatedAt),
	})
	if err != nil {
		return nil, err
	}

	return rowToSnapshot(row)
}

// Delete removes the snapshot of a single day.
func (r *SnapshotRepository) Delete(ctx context.Context, projectID string, day time.Time) (bool, error) {
	n, err := r.queries.DeleteSnapshot(ctx, generated.DeleteSnapshotParams{
		ProjectID: projectID,
		Date:      domain.FormatDate(day),
	})
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// DeleteFrom removes every snapshot dated on or after day.
func (r *SnapshotRepository) DeleteFrom(ctx context.Context, projectID string, day time.Time) (int64, error) {
	return r.queries.DeleteSnapshotsFrom(ctx, generated.DeleteSnapshotsFromParams{
		ProjectID: projectID,
		Date:      domain.FormatDate(day),
	})
}

// ListByProject returns snapshots newest first.
func (r *SnapshotRepository) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.DailySnapshot, error) {
	rows, err := r.queries.ListSnapshotsByProject(ctx, generated.ListSnapshotsByProjectParams{
		ProjectID: projectID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]*domain.DailySnapshot, 0, len(rows))

	for _, row := range rows {
		s, err := rowToSnapshot(row)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}

func rowToSnapshot(row generated.DailyExpenseSummary) (*domain.DailySnapshot, error) {
	day, err := domain.ParseDate(row.Date)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", row.ID, err)
	}

	return &domain.DailySnapshot{
		ID:               row.ID,
		ProjectID:        row.ProjectID,
		Date:             day,
		TotalIncome:      numericToDecimal(row.TotalIncome),
		TotalExpenses:    numericToDecimal(row.TotalExpenses),
		RemainingBalance: numericToDecimal(row.RemainingBalance),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}, nil
}
