package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllProjectsID is the project ID carried by rollup totals.
const AllProjectsID = "all"

// IncomeSummary is the income side of a financial summary.
type IncomeSummary struct {
	FundTransfers            decimal.Decimal
	IncomingProjectTransfers decimal.Decimal
	TotalIncome              decimal.Decimal
	CarriedForwardBalance    decimal.Decimal
	TotalIncomeWithCarried   decimal.Decimal
}

// ExpenseSummary is the expense side of a financial summary.
type ExpenseSummary struct {
	MaterialExpenses         decimal.Decimal
	MaterialExpensesCredit   decimal.Decimal
	WorkerWages              decimal.Decimal
	TransportExpenses        decimal.Decimal
	WorkerTransfers          decimal.Decimal
	MiscExpenses             decimal.Decimal
	OutgoingProjectTransfers decimal.Decimal
	TotalCashExpenses        decimal.Decimal
	TotalAllExpenses         decimal.Decimal
}

// FinancialSummary is the engine's output for one project (or the rollup).
type FinancialSummary struct {
	ProjectID   string
	ProjectName string
	Status      string
	Description *string
	Filter      Filter
	Date        *time.Time

	Income      IncomeSummary
	Expenses    ExpenseSummary
	Workers     WorkerStats
	Counts      SourceCounts
	CashBalance decimal.Decimal
	// TotalBalance is the running balance at the end of the period.
	TotalBalance decimal.Decimal
	LastUpdated  time.Time
}

// NewFinancialSummary combines period totals with the carried-forward
// balance and derives every total.
func NewFinancialSummary(project *Project, filter Filter, totals PeriodTotals, carried decimal.Decimal, now time.Time) *FinancialSummary {
	s := &FinancialSummary{
		Filter: filter,
		Income: IncomeSummary{
			FundTransfers:            totals.FundTransfers,
			IncomingProjectTransfers: totals.IncomingProjectTransfers,
			CarriedForwardBalance:    carried,
		},
		Expenses: ExpenseSummary{
			MaterialExpenses:         totals.MaterialExpenses,
			MaterialExpensesCredit:   totals.MaterialExpensesCredit,
			WorkerWages:              totals.WorkerWages,
			TransportExpenses:        totals.TransportExpenses,
			WorkerTransfers:          totals.WorkerTransfers,
			MiscExpenses:             totals.MiscExpenses,
			OutgoingProjectTransfers: totals.OutgoingProjectTransfers,
		},
		Workers:     totals.Workers,
		Counts:      totals.Counts,
		LastUpdated: now.UTC(),
	}

	if project != nil {
		s.ProjectID = project.ID
		s.ProjectName = project.Name
		s.Status = project.Status
		s.Description = project.Description
	}

	s.recompute()
	return s
}

// recompute derives totals and balances from the component fields.
func (s *FinancialSummary) recompute() {
	s.Income.TotalIncome = s.Income.FundTransfers.Add(s.Income.IncomingProjectTransfers)
	s.Income.TotalIncomeWithCarried = s.Income.TotalIncome.Add(s.Income.CarriedForwardBalance)

	s.Expenses.TotalCashExpenses = decimal.Sum(
		s.Expenses.MaterialExpenses,
		s.Expenses.WorkerWages,
		s.Expenses.TransportExpenses,
		s.Expenses.WorkerTransfers,
		s.Expenses.MiscExpenses,
		s.Expenses.OutgoingProjectTransfers,
	)
	s.Expenses.TotalAllExpenses = s.Expenses.TotalCashExpenses.Add(s.Expenses.MaterialExpensesCredit)

	s.CashBalance = s.Income.TotalIncome.Sub(s.Expenses.TotalCashExpenses)
	s.TotalBalance = s.Income.TotalIncomeWithCarried.Sub(s.Expenses.TotalCashExpenses)
}

// WithDate marks the summary as a single-day summary.
func (s *FinancialSummary) WithDate(day time.Time) *FinancialSummary {
	d := Day(day)
	s.Date = &d
	return s
}

// Add accumulates other into s component-wise. Derived fields are summed
// too, so the invariants keep holding on the total.
func (s *FinancialSummary) Add(other *FinancialSummary) {
	s.Income.FundTransfers = s.Income.FundTransfers.Add(other.Income.FundTransfers)
	s.Income.IncomingProjectTransfers = s.Income.IncomingProjectTransfers.Add(other.Income.IncomingProjectTransfers)
	s.Income.CarriedForwardBalance = s.Income.CarriedForwardBalance.Add(other.Income.CarriedForwardBalance)

	s.Expenses.MaterialExpenses = s.Expenses.MaterialExpenses.Add(other.Expenses.MaterialExpenses)
	s.Expenses.MaterialExpensesCredit = s.Expenses.MaterialExpensesCredit.Add(other.Expenses.MaterialExpensesCredit)
	s.Expenses.WorkerWages = s.Expenses.WorkerWages.Add(other.Expenses.WorkerWages)
	s.Expenses.TransportExpenses = s.Expenses.TransportExpenses.Add(other.Expenses.TransportExpenses)
	s.Expenses.WorkerTransfers = s.Expenses.WorkerTransfers.Add(other.Expenses.WorkerTransfers)
	s.Expenses.MiscExpenses = s.Expenses.MiscExpenses.Add(other.Expenses.MiscExpenses)
	s.Expenses.OutgoingProjectTransfers = s.Expenses.OutgoingProjectTransfers.Add(other.Expenses.OutgoingProjectTransfers)

	s.Workers = s.Workers.Add(other.Workers)
	s.Counts = s.Counts.Add(other.Counts)

	if other.LastUpdated.After(s.LastUpdated) {
		s.LastUpdated = other.LastUpdated
	}

	s.recompute()
}

// Rollup sums summaries into one all-projects total.
func Rollup(filter Filter, summaries []*FinancialSummary, now time.Time) *FinancialSummary {
	total := NewFinancialSummary(&Project{ID: AllProjectsID, Name: "All projects", Status: ProjectStatusActive}, filter, PeriodTotals{}, decimal.Zero, now)
	if filter.Kind == FilterDay {
		total.WithDate(filter.From)
	}

	for _, s := range summaries {
		total.Add(s)
	}

	return total
}
