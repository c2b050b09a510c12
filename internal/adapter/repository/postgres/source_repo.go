package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
	"github.com/ayemen27/siteledger/internal/infrastructure/postgres/generated"
	"github.com/ayemen27/siteledger/internal/usecase"
)

type sumFunc func(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error)

// SourceRepository reads the transaction tables that feed the ledger.
type SourceRepository struct {
	queries *generated.Queries
	retrier usecase.Retrier
	metrics *metrics.Metrics
}

// NewSourceRepository creates a new SourceRepository. retrier and m may be nil.
func NewSourceRepository(db generated.DBTX, retrier usecase.Retrier, m *metrics.Metrics) *SourceRepository {
	return &SourceRepository{
		queries: generated.New(db),
		retrier: retrier,
		metrics: m,
	}
}

// Sources returns one TransactionSource per ledger stream.
func (r *SourceRepository) Sources() []usecase.TransactionSource {
	return []usecase.TransactionSource{
		r.source(domain.SourceFundTransfers, "fund_transfers", sumFundTransfers),
		r.source(domain.SourceIncomingProjectTransfers, "project_fund_transfers", sumIncomingProjectTransfers),
		r.source(domain.SourceOutgoingProjectTransfers, "project_fund_transfers", sumOutgoingProjectTransfers),
		r.source(domain.SourceWorkerWages, "worker_attendance", sumWorkerWages),
		r.source(domain.SourceMaterialPurchases, "material_purchases", sumMaterialPurchases),
		r.source(domain.SourceTransportation, "transportation_expenses", sumTransportation),
		r.source(domain.SourceWorkerTransfers, "worker_transfers", sumWorkerTransfers),
		r.source(domain.SourceMiscExpenses, "worker_misc_expenses", sumMiscExpenses),
	}
}

func (r *SourceRepository) source(kind domain.SourceKind, table string, sum sumFunc) *source {
	return &source{repo: r, kind: kind, table: table, sum: sum}
}

type source struct {
	repo  *SourceRepository
	kind  domain.SourceKind
	table string
	sum   sumFunc
}

func (s *source) Kind() domain.SourceKind {
	return s.kind
}

func (s *source) SumForProject(ctx context.Context, projectID string, filter domain.Filter) (domain.SourceTotals, error) {
	from, to, before := filter.Bounds()

	var res domain.SourceTotals
	op := func() error {
		var err error
		res, err = s.sum(ctx, s.repo.queries, projectID, from, to, before)
		return err
	}

	var err error
	if s.repo.retrier != nil {
		err = s.repo.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	if s.repo.metrics != nil {
		s.repo.metrics.DBQueries.WithLabelValues("sum", s.table).Inc()
		if err != nil {
			s.repo.metrics.DBErrors.WithLabelValues("sum_" + string(s.kind)).Inc()
		}
	}

	if err != nil {
		return domain.SourceTotals{}, fmt.Errorf("sum %s: %w", s.table, err)
	}

	res.Kind = s.kind
	return res, nil
}

func sumFundTransfers(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumFundTransfers(ctx, generated.SumFundTransfersParams{
		ProjectID:  projectID,
		FromDate:   dateParam(from),
		ToDate:     dateParam(to),
		BeforeDate: dateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{Count: row.RowCount, Total: row.Total}, nil
}

func sumIncomingProjectTransfers(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumIncomingProjectTransfers(ctx, generated.SumIncomingProjectTransfersParams{
		ProjectID:  projectID,
		FromDate:   dateParam(from),
		ToDate:     dateParam(to),
		BeforeDate: dateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{Count: row.RowCount, Total: row.Total}, nil
}

func sumOutgoingProjectTransfers(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumOutgoingProjectTransfers(ctx, generated.SumOutgoingProjectTransfersParams{
		ProjectID:  projectID,
		FromDate:   dateParam(from),
		ToDate:     dateParam(to),
		BeforeDate: dateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{Count: row.RowCount, Total: row.Total}, nil
}

func sumWorkerWages(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	wages, err := q.SumWorkerWages(ctx, generated.SumWorkerWagesParams{
		ProjectID:  projectID,
		FromDate:   textDateParam(from),
		ToDate:     textDateParam(to),
		BeforeDate: textDateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}

	workers, err := q.CountAttendanceWorkers(ctx, generated.CountAttendanceWorkersParams{
		ProjectID:  projectID,
		FromDate:   textDateParam(from),
		ToDate:     textDateParam(to),
		BeforeDate: textDateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}

	return domain.SourceTotals{
		Count:         wages.RowCount,
		Total:         wages.Total,
		Days:          wages.CompletedDays,
		Workers:       workers.TotalWorkers,
		ActiveWorkers: workers.ActiveWorkers,
	}, nil
}

func sumMaterialPurchases(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumMaterialPurchases(ctx, generated.SumMaterialPurchasesParams{
		ProjectID:    projectID,
		FromDate:     textDateParam(from),
		ToDate:       textDateParam(to),
		BeforeDate:   textDateParam(before),
		CashLabels:   domain.PurchaseTypeLabels(domain.PurchaseCash),
		CreditLabels: domain.PurchaseTypeLabels(domain.PurchaseCredit),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{
		Count:       row.CashCount,
		Total:       row.CashTotal,
		Credit:      row.CreditTotal,
		CreditCount: row.CreditCount,
	}, nil
}

func sumTransportation(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumTransportationExpenses(ctx, generated.SumTransportationExpensesParams{
		ProjectID:  projectID,
		FromDate:   textDateParam(from),
		ToDate:     textDateParam(to),
		BeforeDate: textDateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{Count: row.RowCount, Total: row.Total}, nil
}

func sumWorkerTransfers(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumWorkerTransfers(ctx, generated.SumWorkerTransfersParams{
		ProjectID:  projectID,
		FromDate:   textDateParam(from),
		ToDate:     textDateParam(to),
		BeforeDate: textDateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{Count: row.RowCount, Total: row.Total}, nil
}

func sumMiscExpenses(ctx context.Context, q *generated.Queries, projectID string, from, to, before *time.Time) (domain.SourceTotals, error) {
	row, err := q.SumWorkerMiscExpenses(ctx, generated.SumWorkerMiscExpensesParams{
		ProjectID:  projectID,
		FromDate:   textDateParam(from),
		ToDate:     textDateParam(to),
		BeforeDate: textDateParam(before),
	})
	if err != nil {
		return domain.SourceTotals{}, err
	}
	return domain.SourceTotals{Count: row.RowCount, Total: row.Total}, nil
}
