package domain

import "github.com/shopspring/decimal"

// PeriodTotals holds sanitized per-category sums for one project and filter.
type PeriodTotals struct {
	FundTransfers            decimal.Decimal
	IncomingProjectTransfers decimal.Decimal
	OutgoingProjectTransfers decimal.Decimal
	WorkerWages              decimal.Decimal
	MaterialExpenses         decimal.Decimal
	MaterialExpensesCredit   decimal.Decimal
	TransportExpenses        decimal.Decimal
	WorkerTransfers          decimal.Decimal
	MiscExpenses             decimal.Decimal

	Counts  SourceCounts
	Workers WorkerStats
}

// Income is fund transfers plus incoming project transfers.
func (t PeriodTotals) Income() decimal.Decimal {
	return t.FundTransfers.Add(t.IncomingProjectTransfers)
}

// CashExpenses excludes credit exposure.
func (t PeriodTotals) CashExpenses() decimal.Decimal {
	return decimal.Sum(
		t.MaterialExpenses,
		t.WorkerWages,
		t.TransportExpenses,
		t.WorkerTransfers,
		t.MiscExpenses,
		t.OutgoingProjectTransfers,
	)
}

// Net is the cash movement of the period.
func (t PeriodTotals) Net() decimal.Decimal {
	return t.Income().Sub(t.CashExpenses())
}

// SourceCounts records how many rows each source contributed.
type SourceCounts struct {
	MaterialPurchases      int64 `json:"material_purchases"`
	MaterialCredit         int64 `json:"material_credit"`
	WorkerAttendance       int64 `json:"worker_attendance"`
	TransportationExpenses int64 `json:"transportation_expenses"`
	WorkerTransfers        int64 `json:"worker_transfers"`
	MiscExpenses           int64 `json:"misc_expenses"`
	FundTransfers          int64 `json:"fund_transfers"`
	IncomingTransfers      int64 `json:"incoming_transfers"`
	OutgoingTransfers      int64 `json:"outgoing_transfers"`
}

// Add returns the field-wise sum.
func (c SourceCounts) Add(o SourceCounts) SourceCounts {
	return SourceCounts{
		MaterialPurchases:      c.MaterialPurchases + o.MaterialPurchases,
		MaterialCredit:         c.MaterialCredit + o.MaterialCredit,
		WorkerAttendance:       c.WorkerAttendance + o.WorkerAttendance,
		TransportationExpenses: c.TransportationExpenses + o.TransportationExpenses,
		WorkerTransfers:        c.WorkerTransfers + o.WorkerTransfers,
		MiscExpenses:           c.MiscExpenses + o.MiscExpenses,
		FundTransfers:          c.FundTransfers + o.FundTransfers,
		IncomingTransfers:      c.IncomingTransfers + o.IncomingTransfers,
		OutgoingTransfers:      c.OutgoingTransfers + o.OutgoingTransfers,
	}
}

// WorkerStats summarises attendance for the period. ActiveWorkers uses each
// worker's current active flag, not the flag as of the period.
type WorkerStats struct {
	TotalWorkers  int64 `json:"total_workers"`
	ActiveWorkers int64 `json:"active_workers"`
	CompletedDays int64 `json:"completed_days"`
}

// Add returns the field-wise sum.
func (w WorkerStats) Add(o WorkerStats) WorkerStats {
	return WorkerStats{
		TotalWorkers:  w.TotalWorkers + o.TotalWorkers,
		ActiveWorkers: w.ActiveWorkers + o.ActiveWorkers,
		CompletedDays: w.CompletedDays + o.CompletedDays,
	}
}
