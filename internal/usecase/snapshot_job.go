package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
)

var ErrLockHeld = errors.New("job lock held by another instance")

const (
	snapshotJobName    = "daily-snapshots"
	snapshotJobLockTTL = 30 * time.Minute
)

// SnapshotPersister persists one day's snapshots for every active project.
type SnapshotPersister interface {
	PersistAllDailySnapshots(ctx context.Context, day time.Time) ([]*domain.DailySnapshot, error)
}

// SnapshotJob persists the previous calendar day's snapshots. Days are
// computed in the job's location.
type SnapshotJob struct {
	persister SnapshotPersister
	locker    JobLocker
	location  *time.Location
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewSnapshotJob creates a new SnapshotJob. locker and m may be nil.
func NewSnapshotJob(persister SnapshotPersister, locker JobLocker, location *time.Location, logger zerolog.Logger, m *metrics.Metrics) *SnapshotJob {
	if location == nil {
		location = time.UTC
	}

	return &SnapshotJob{
		persister: persister,
		locker:    locker,
		location:  location,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Run persists yesterday's snapshots. A run skipped because another
// replica holds the lock is not an error.
func (j *SnapshotJob) Run(ctx context.Context) error {
	day := domain.AddDays(j.now().In(j.location), -1)

	run := func(ctx context.Context) error {
		saved, err := j.persister.PersistAllDailySnapshots(ctx, day)

		event := j.logger.Info()
		outcome := "success"
		if err != nil {
			event = j.logger.Error().Err(err)
			outcome = "failed"
			if len(saved) > 0 {
				outcome = "partial"
			}
		}
		event.
			Str("date", domain.FormatDate(day)).
			Int("persisted", len(saved)).
			Msg("daily snapshot job finished")

		j.observe(outcome)
		return err
	}

	if j.locker == nil {
		return run(ctx)
	}

	err := j.locker.Run(ctx, snapshotJobName, snapshotJobLockTTL, run)
	if errors.Is(err, ErrLockHeld) {
		j.logger.Info().Str("date", domain.FormatDate(day)).Msg("daily snapshot job skipped, lock held elsewhere")
		j.observe("skipped")
		return nil
	}

	return err
}

func (j *SnapshotJob) observe(outcome string) {
	if j.metrics != nil {
		j.metrics.SnapshotJobRuns.WithLabelValues(outcome).Inc()
	}
}
