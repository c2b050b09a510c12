package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
)

// FinancialUseCase computes project financial summaries from the ledger
// sources and maintains the daily snapshot cache.
type FinancialUseCase struct {
	projects  ProjectRepository
	snapshots SnapshotStore
	reader    *LedgerReader
	resolver  *CarriedForwardResolver
	idGen     IDGenerator
	publisher EventPublisher
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	rollupConcurrency int
	now               func() time.Time
}

// Option configures a FinancialUseCase.
type Option func(*FinancialUseCase)

// WithStalenessChecker enables backdated-change detection on snapshots.
func WithStalenessChecker(c StalenessChecker) Option {
	return func(uc *FinancialUseCase) {
		uc.resolver.staleness = c
	}
}

// WithEventPublisher publishes snapshot events after each save.
func WithEventPublisher(p EventPublisher) Option {
	return func(uc *FinancialUseCase) {
		uc.publisher = p
	}
}

// WithRollupConcurrency bounds how many projects are aggregated at once.
func WithRollupConcurrency(n int) Option {
	return func(uc *FinancialUseCase) {
		if n > 0 {
			uc.rollupConcurrency = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(uc *FinancialUseCase) {
		uc.now = now
	}
}

// NewFinancialUseCase creates a new FinancialUseCase.
func NewFinancialUseCase(
	projects ProjectRepository,
	snapshots SnapshotStore,
	sources []TransactionSource,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
	opts ...Option,
) *FinancialUseCase {
	reader := NewLedgerReader(sources, logger, m)

	uc := &FinancialUseCase{
		projects:          projects,
		snapshots:         snapshots,
		reader:            reader,
		resolver:          NewCarriedForwardResolver(reader, snapshots, nil, logger, m),
		idGen:             idGen,
		logger:            logger,
		metrics:           m,
		rollupConcurrency: 1,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Aggregate computes the financial summary of one project for filter.
func (uc *FinancialUseCase) Aggregate(ctx context.Context, projectID string, filter domain.Filter) (*domain.FinancialSummary, error) {
	if err := domain.ValidateProjectID(projectID); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return uc.aggregate(ctx, project, filter)
}

func (uc *FinancialUseCase) aggregate(ctx context.Context, project *domain.Project, filter domain.Filter) (*domain.FinancialSummary, error) {
	start := time.Now()
	kind := filter.Kind.String()

	summary, stage, err := uc.compute(ctx, project, filter)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.AggregationErrors.WithLabelValues(stage).Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AggregationsTotal.WithLabelValues(kind).Inc()
		uc.metrics.AggregationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}

	return summary, nil
}

func (uc *FinancialUseCase) compute(ctx context.Context, project *domain.Project, filter domain.Filter) (*domain.FinancialSummary, string, error) {
	// The snapshot at the period start may have been computed before
	// later-recorded transactions; drop it so it is never read back.
	if !filter.IsCumulative() {
		deleted, err := uc.snapshots.Delete(ctx, project.ID, filter.StartDate())
		if err != nil {
			return nil, "invalidate", fmt.Errorf("invalidate snapshot %s: %w", domain.FormatDate(filter.StartDate()), err)
		}
		if deleted && uc.metrics != nil {
			uc.metrics.SnapshotsInvalidated.WithLabelValues("recompute").Inc()
		}
	}

	carried, err := uc.resolver.Resolve(ctx, project.ID, filter)
	if err != nil {
		return nil, "carried_forward", err
	}

	totals, err := uc.reader.Read(ctx, project.ID, filter)
	if err != nil {
		return nil, "read", err
	}

	summary := domain.NewFinancialSummary(project, filter, totals, carried, uc.now())
	if filter.Kind == domain.FilterDay {
		summary.WithDate(filter.From)
	}

	return summary, "", nil
}

// GetProjectFinancialSummary aggregates one project for the optional date or
// date range query values.
func (uc *FinancialUseCase) GetProjectFinancialSummary(ctx context.Context, projectID, date, dateFrom, dateTo string) (*domain.FinancialSummary, error) {
	filter, err := domain.ParseFilter(date, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	return uc.Aggregate(ctx, projectID, filter)
}

// GetDailyFinancialSummary aggregates one project for a single day.
func (uc *FinancialUseCase) GetDailyFinancialSummary(ctx context.Context, projectID, date string) (*domain.FinancialSummary, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	return uc.Aggregate(ctx, projectID, domain.OnDay(day))
}

// AggregateAll aggregates every active project, in project creation order.
func (uc *FinancialUseCase) AggregateAll(ctx context.Context, filter domain.Filter) ([]*domain.FinancialSummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	projects, err := uc.projects.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active projects: %w", err)
	}

	summaries := make([]*domain.FinancialSummary, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.rollupConcurrency)

	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			s, err := uc.aggregate(gctx, p, filter)
			if err != nil {
				return fmt.Errorf("aggregate project %s: %w", p.ID, err)
			}
			summaries[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// Totals sums AggregateAll into one all-projects summary.
func (uc *FinancialUseCase) Totals(ctx context.Context, filter domain.Filter) (*domain.FinancialSummary, error) {
	summaries, err := uc.AggregateAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return domain.Rollup(filter, summaries, uc.now()), nil
}

// GetAllProjectsStats aggregates every active project for the optional date
// or date range query values.
func (uc *FinancialUseCase) GetAllProjectsStats(ctx context.Context, date, dateFrom, dateTo string) ([]*domain.FinancialSummary, error) {
	filter, err := domain.ParseFilter(date, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	return uc.AggregateAll(ctx, filter)
}

// GetTotalDailyFinancialSummary returns the all-projects total for one day.
func (uc *FinancialUseCase) GetTotalDailyFinancialSummary(ctx context.Context, date string) (*domain.FinancialSummary, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	return uc.Totals(ctx, domain.OnDay(day))
}

// PersistDailySnapshot recomputes a project's day and stores the resulting
// running balance as that day's snapshot.
func (uc *FinancialUseCase) PersistDailySnapshot(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error) {
	if err := domain.ValidateProjectID(projectID); err != nil {
		return nil, err
	}

	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return uc.persist(ctx, project, day)
}

func (uc *FinancialUseCase) persist(ctx context.Context, project *domain.Project, day time.Time) (*domain.DailySnapshot, error) {
	// Taken before the reads so rows inserted while aggregating mark the snapshot stale.
	now := uc.now().UTC()
	summary, err := uc.aggregate(ctx, project, domain.OnDay(day))
	if err != nil {
		return nil, err
	}

	saved, err := uc.snapshots.Save(ctx, domain.NewDailySnapshot(uc.idGen.Generate(), summary, day, now))
	if err != nil {
		return nil, fmt.Errorf("save snapshot %s for project %s: %w", domain.FormatDate(day), project.ID, err)
	}

	if uc.metrics != nil {
		uc.metrics.SnapshotsPersisted.Inc()
	}

	uc.publish(ctx, saved, now)

	return saved, nil
}

func (uc *FinancialUseCase) publish(ctx context.Context, s *domain.DailySnapshot, at time.Time) {
	if uc.publisher == nil {
		return
	}

	status := "ok"
	if err := uc.publisher.PublishSnapshotSaved(ctx, domain.NewSnapshotSavedEvent(s, at)); err != nil {
		status = "error"
		uc.logger.Error().
			Err(err).
			Str("project_id", s.ProjectID).
			Str("date", domain.FormatDate(s.Date)).
			Msg("failed to publish snapshot event")
	}

	if uc.metrics != nil {
		uc.metrics.EventsPublished.WithLabelValues(domain.EventTypeSnapshotSaved, status).Inc()
	}
}

// PersistAllDailySnapshots persists day for every active project. A failing
// project does not stop the others; all failures are returned joined.
func (uc *FinancialUseCase) PersistAllDailySnapshots(ctx context.Context, day time.Time) ([]*domain.DailySnapshot, error) {
	projects, err := uc.projects.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active projects: %w", err)
	}

	var (
		saved []*domain.DailySnapshot
		errs  []error
	)

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		s, err := uc.persist(ctx, p, day)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		saved = append(saved, s)
	}

	return saved, errors.Join(errs...)
}

// ListSnapshots returns a project's stored snapshots, newest first.
func (uc *FinancialUseCase) ListSnapshots(ctx context.Context, projectID string, limit, offset int) ([]*domain.DailySnapshot, error) {
	if err := domain.ValidateProjectID(projectID); err != nil {
		return nil, err
	}

	limit, offset, _ = domain.ValidatePagination(limit, offset)

	if _, err := uc.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	return uc.snapshots.ListByProject(ctx, projectID, limit, offset)
}
