package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
)

// IncomeResponse is the income block of a summary.
type IncomeResponse struct {
	FundTransfers            decimal.Decimal `json:"fundTransfers"`
	IncomingProjectTransfers decimal.Decimal `json:"incomingProjectTransfers"`
	TotalIncome              decimal.Decimal `json:"totalIncome"`
	CarriedForwardBalance    decimal.Decimal `json:"carriedForwardBalance"`
	TotalIncomeWithCarried   decimal.Decimal `json:"totalIncomeWithCarried"`
}

// ExpensesResponse is the expense block of a summary.
type ExpensesResponse struct {
	MaterialExpenses         decimal.Decimal `json:"materialExpenses"`
	MaterialExpensesCredit   decimal.Decimal `json:"materialExpensesCredit"`
	WorkerWages              decimal.Decimal `json:"workerWages"`
	TransportExpenses        decimal.Decimal `json:"transportExpenses"`
	WorkerTransfers          decimal.Decimal `json:"workerTransfers"`
	MiscExpenses             decimal.Decimal `json:"miscExpenses"`
	OutgoingProjectTransfers decimal.Decimal `json:"outgoingProjectTransfers"`
	TotalCashExpenses        decimal.Decimal `json:"totalCashExpenses"`
	TotalAllExpenses         decimal.Decimal `json:"totalAllExpenses"`
}

// WorkersResponse is the worker block of a summary.
type WorkersResponse struct {
	TotalWorkers  int64 `json:"totalWorkers"`
	ActiveWorkers int64 `json:"activeWorkers"`
	CompletedDays int64 `json:"completedDays"`
}

// CountsResponse holds per-source record counts.
type CountsResponse struct {
	MaterialPurchases      int64 `json:"materialPurchases"`
	MaterialCredit         int64 `json:"materialCredit"`
	WorkerAttendance       int64 `json:"workerAttendance"`
	TransportationExpenses int64 `json:"transportationExpenses"`
	WorkerTransfers        int64 `json:"workerTransfers"`
	MiscExpenses           int64 `json:"miscExpenses"`
	FundTransfers          int64 `json:"fundTransfers"`
	IncomingTransfers      int64 `json:"incomingTransfers"`
	OutgoingTransfers      int64 `json:"outgoingTransfers"`
}

// FinancialSummaryResponse represents a financial summary in API responses.
// Amounts are encoded as decimal strings.
type FinancialSummaryResponse struct {
	ProjectID    string           `json:"projectId"`
	ProjectName  string           `json:"projectName,omitempty"`
	Status       string           `json:"status,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Period       string           `json:"period"`
	Date         string           `json:"date,omitempty"`
	Income       IncomeResponse   `json:"income"`
	Expenses     ExpensesResponse `json:"expenses"`
	Workers      WorkersResponse  `json:"workers"`
	Counts       CountsResponse   `json:"counts"`
	CashBalance  decimal.Decimal  `json:"cashBalance"`
	TotalBalance decimal.Decimal  `json:"totalBalance"`
	LastUpdated  time.Time        `json:"lastUpdated"`
}

// SummaryFromDomain converts a domain summary to response.
func SummaryFromDomain(s *domain.FinancialSummary) *FinancialSummaryResponse {
	resp := &FinancialSummaryResponse{
		ProjectID:   s.ProjectID,
		ProjectName: s.ProjectName,
		Status:      s.Status,
		Description: s.Description,
		Period:      s.Filter.String(),
		Income: IncomeResponse{
			FundTransfers:            s.Income.FundTransfers,
			IncomingProjectTransfers: s.Income.IncomingProjectTransfers,
			TotalIncome:              s.Income.TotalIncome,
			CarriedForwardBalance:    s.Income.CarriedForwardBalance,
			TotalIncomeWithCarried:   s.Income.TotalIncomeWithCarried,
		},
		Expenses: ExpensesResponse{
			MaterialExpenses:         s.Expenses.MaterialExpenses,
			MaterialExpensesCredit:   s.Expenses.MaterialExpensesCredit,
			WorkerWages:              s.Expenses.WorkerWages,
			TransportExpenses:        s.Expenses.TransportExpenses,
			WorkerTransfers:          s.Expenses.WorkerTransfers,
			MiscExpenses:             s.Expenses.MiscExpenses,
			OutgoingProjectTransfers: s.Expenses.OutgoingProjectTransfers,
			TotalCashExpenses:        s.Expenses.TotalCashExpenses,
			TotalAllExpenses:         s.Expenses.TotalAllExpenses,
		},
		Workers: WorkersResponse{
			TotalWorkers:  s.Workers.TotalWorkers,
			ActiveWorkers: s.Workers.ActiveWorkers,
			CompletedDays: s.Workers.CompletedDays,
		},
		Counts: CountsResponse{
			MaterialPurchases:      s.Counts.MaterialPurchases,
			MaterialCredit:         s.Counts.MaterialCredit,
			WorkerAttendance:       s.Counts.WorkerAttendance,
			TransportationExpenses: s.Counts.TransportationExpenses,
			WorkerTransfers:        s.Counts.WorkerTransfers,
			MiscExpenses:           s.Counts.MiscExpenses,
			FundTransfers:          s.Counts.FundTransfers,
			IncomingTransfers:      s.Counts.IncomingTransfers,
			OutgoingTransfers:      s.Counts.OutgoingTransfers,
		},
		CashBalance:  s.CashBalance,
		TotalBalance: s.TotalBalance,
		LastUpdated:  s.LastUpdated,
	}

	if s.Date != nil {
		resp.Date = domain.FormatDate(*s.Date)
	}

	return resp
}

// SummariesFromDomain converts domain summaries to responses.
func SummariesFromDomain(summaries []*domain.FinancialSummary) []*FinancialSummaryResponse {
	result := make([]*FinancialSummaryResponse, len(summaries))
	for i, s := range summaries {
		result[i] = SummaryFromDomain(s)
	}
	return result
}

// ProjectsStatsResponse wraps the per-project summaries of a rollup.
type ProjectsStatsResponse struct {
	Projects []*FinancialSummaryResponse `json:"projects"`
	Count    int                         `json:"count"`
}

// SnapshotResponse represents a daily snapshot in API responses.
type SnapshotResponse struct {
	ID               string          `json:"id"`
	ProjectID        string          `json:"projectId"`
	Date             string          `json:"date"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// SnapshotFromDomain converts a domain snapshot to response.
func SnapshotFromDomain(s *domain.DailySnapshot) *SnapshotResponse {
	return &SnapshotResponse{
		ID:               s.ID,
		ProjectID:        s.ProjectID,
		Date:             domain.FormatDate(s.Date),
		TotalIncome:      s.TotalIncome,
		TotalExpenses:    s.TotalExpenses,
		RemainingBalance: s.RemainingBalance,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// SnapshotsFromDomain converts domain snapshots to responses.
func SnapshotsFromDomain(snapshots []*domain.DailySnapshot) []*SnapshotResponse {
	result := make([]*SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = SnapshotFromDomain(s)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
