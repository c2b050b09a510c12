package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
)

// LedgerReader queries every transaction source for a project and folds the
// sanitized results into period totals.
type LedgerReader struct {
	sources []TransactionSource
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewLedgerReader creates a new LedgerReader.
func NewLedgerReader(sources []TransactionSource, logger zerolog.Logger, m *metrics.Metrics) *LedgerReader {
	return &LedgerReader{
		sources: sources,
		logger:  logger,
		metrics: m,
	}
}

// Read issues every source query concurrently. Any failing source fails the
// whole read.
func (r *LedgerReader) Read(ctx context.Context, projectID string, filter domain.Filter) (domain.PeriodTotals, error) {
	results := make([]domain.SourceTotals, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		i, src := i, src
		g.Go(func() error {
			start := time.Now()
			res, err := src.SumForProject(gctx, projectID, filter)
			if r.metrics != nil {
				r.metrics.SourceReadDuration.WithLabelValues(string(src.Kind())).Observe(time.Since(start).Seconds())
			}
			if err != nil {
				return fmt.Errorf("read %s for project %s: %w", src.Kind(), projectID, err)
			}

			res.Kind = src.Kind()
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.PeriodTotals{}, err
	}

	var totals domain.PeriodTotals
	for _, res := range results {
		r.fold(&totals, res, projectID)
	}

	return totals, nil
}

// Net returns income minus cash expenses for the filter.
func (r *LedgerReader) Net(ctx context.Context, projectID string, filter domain.Filter) (decimal.Decimal, error) {
	totals, err := r.Read(ctx, projectID, filter)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Net(), nil
}

func (r *LedgerReader) fold(t *domain.PeriodTotals, res domain.SourceTotals, projectID string) {
	field := string(res.Kind)
	total := r.amount(res.Total, projectID, field)
	count := r.count(res.Count, projectID, field+".count")

	switch res.Kind {
	case domain.SourceFundTransfers:
		t.FundTransfers = t.FundTransfers.Add(total)
		t.Counts.FundTransfers += count
	case domain.SourceIncomingProjectTransfers:
		t.IncomingProjectTransfers = t.IncomingProjectTransfers.Add(total)
		t.Counts.IncomingTransfers += count
	case domain.SourceOutgoingProjectTransfers:
		t.OutgoingProjectTransfers = t.OutgoingProjectTransfers.Add(total)
		t.Counts.OutgoingTransfers += count
	case domain.SourceWorkerWages:
		t.WorkerWages = t.WorkerWages.Add(total)
		t.Counts.WorkerAttendance += count
		t.Workers = t.Workers.Add(domain.WorkerStats{
			TotalWorkers:  r.count(res.Workers, projectID, field+".workers"),
			ActiveWorkers: r.count(res.ActiveWorkers, projectID, field+".active_workers"),
			CompletedDays: r.count(res.Days, projectID, field+".days"),
		})
	case domain.SourceMaterialPurchases:
		t.MaterialExpenses = t.MaterialExpenses.Add(total)
		t.MaterialExpensesCredit = t.MaterialExpensesCredit.Add(r.amount(res.Credit, projectID, field+".credit"))
		t.Counts.MaterialPurchases += count
		t.Counts.MaterialCredit += r.count(res.CreditCount, projectID, field+".credit_count")
	case domain.SourceTransportation:
		t.TransportExpenses = t.TransportExpenses.Add(total)
		t.Counts.TransportationExpenses += count
	case domain.SourceWorkerTransfers:
		t.WorkerTransfers = t.WorkerTransfers.Add(total)
		t.Counts.WorkerTransfers += count
	case domain.SourceMiscExpenses:
		t.MiscExpenses = t.MiscExpenses.Add(total)
		t.Counts.MiscExpenses += count
	default:
		r.logger.Warn().Str("source", field).Msg("ignoring unknown transaction source")
	}
}

func (r *LedgerReader) amount(raw any, projectID, field string) decimal.Decimal {
	return r.sanitize(raw, domain.KindDecimal, projectID, field)
}

func (r *LedgerReader) count(raw int64, projectID, field string) int64 {
	return r.sanitize(raw, domain.KindInteger, projectID, field).IntPart()
}

func (r *LedgerReader) sanitize(raw any, kind domain.NumericKind, projectID, field string) decimal.Decimal {
	v, err := domain.Sanitize(raw, kind)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("project_id", projectID).
			Str("field", field).
			Msg("corrupt value coerced to zero")

		if r.metrics != nil {
			r.metrics.SanitizedValues.WithLabelValues(domain.RejectionReason(err)).Inc()
		}
	}
	return v
}
