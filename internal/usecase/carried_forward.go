package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
)

// Resolution paths, used for logging and metrics.
const (
	pathCumulative = "cumulative"
	pathCold       = "cold"
	pathSnapshot   = "snapshot"
	pathGap        = "gap"
)

// CarriedForwardResolver computes the balance a project carries into the
// first day of a period.
type CarriedForwardResolver struct {
	reader    *LedgerReader
	snapshots SnapshotStore
	staleness StalenessChecker
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewCarriedForwardResolver creates a new CarriedForwardResolver. staleness
// may be nil, in which case snapshots are trusted as stored.
func NewCarriedForwardResolver(
	reader *LedgerReader,
	snapshots SnapshotStore,
	staleness StalenessChecker,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *CarriedForwardResolver {
	return &CarriedForwardResolver{
		reader:    reader,
		snapshots: snapshots,
		staleness: staleness,
		logger:    logger,
		metrics:   m,
	}
}

// Resolve returns the cumulative balance strictly before the filter's start
// date. Cumulative filters carry nothing.
func (r *CarriedForwardResolver) Resolve(ctx context.Context, projectID string, filter domain.Filter) (decimal.Decimal, error) {
	if filter.IsCumulative() {
		r.observe(projectID, filter, pathCumulative, decimal.Zero)
		return decimal.Zero, nil
	}

	balance, path, err := r.resolve(ctx, projectID, filter)
	if err != nil {
		return decimal.Zero, err
	}

	if balance.Abs().LessThan(NoiseThreshold) {
		balance = decimal.Zero
	}

	r.observe(projectID, filter, path, balance)
	return balance, nil
}

func (r *CarriedForwardResolver) resolve(ctx context.Context, projectID string, filter domain.Filter) (decimal.Decimal, string, error) {
	start := filter.StartDate()
	prev := domain.AddDays(start, -1)

	for i := 0; i < maxStaleSnapshots; i++ {
		snap, err := r.snapshots.LatestBefore(ctx, projectID, start)
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			break
		}
		if err != nil {
			return decimal.Zero, "", fmt.Errorf("find snapshot before %s: %w", domain.FormatDate(start), err)
		}

		stale, err := r.isStale(ctx, snap)
		if err != nil {
			return decimal.Zero, "", err
		}
		if stale {
			if err := r.discard(ctx, snap); err != nil {
				return decimal.Zero, "", err
			}
			continue
		}

		// A snapshot holds a computed balance, not raw input; it is used as stored.
		remaining := snap.RemainingBalance

		if snap.Date.Equal(prev) {
			return remaining, pathSnapshot, nil
		}

		gap, err := r.reader.Net(ctx, projectID, domain.Between(domain.AddDays(snap.Date, 1), prev))
		if err != nil {
			return decimal.Zero, "", fmt.Errorf("net since snapshot %s: %w", domain.FormatDate(snap.Date), err)
		}

		return remaining.Add(gap), pathGap, nil
	}

	net, err := r.reader.Net(ctx, projectID, domain.Before(start))
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("net before %s: %w", domain.FormatDate(start), err)
	}

	return net, pathCold, nil
}

func (r *CarriedForwardResolver) isStale(ctx context.Context, snap *domain.DailySnapshot) (bool, error) {
	if r.staleness == nil {
		return false, nil
	}

	stale, err := r.staleness.HasBackdatedChanges(ctx, snap.ProjectID, snap.Date, snap.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("check snapshot %s staleness: %w", domain.FormatDate(snap.Date), err)
	}

	return stale, nil
}

// discard drops the stale snapshot and every later one, since each of them
// chained from it.
func (r *CarriedForwardResolver) discard(ctx context.Context, snap *domain.DailySnapshot) error {
	n, err := r.snapshots.DeleteFrom(ctx, snap.ProjectID, snap.Date)
	if err != nil {
		return fmt.Errorf("invalidate snapshots from %s: %w", domain.FormatDate(snap.Date), err)
	}

	r.logger.Info().
		Str("project_id", snap.ProjectID).
		Str("from", domain.FormatDate(snap.Date)).
		Int64("deleted", n).
		Msg("discarded stale snapshots")

	if r.metrics != nil {
		r.metrics.SnapshotsInvalidated.WithLabelValues("stale").Add(float64(n))
	}

	return nil
}

func (r *CarriedForwardResolver) observe(projectID string, filter domain.Filter, path string, balance decimal.Decimal) {
	r.logger.Debug().
		Str("project_id", projectID).
		Str("filter", filter.String()).
		Str("path", path).
		Str("balance", balance.String()).
		Msg("resolved carried-forward balance")

	if r.metrics != nil {
		r.metrics.CarriedForward.WithLabelValues(path).Inc()
	}
}
