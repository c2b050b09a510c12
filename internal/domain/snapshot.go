package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySnapshot caches the cumulative balance of a project through Date.
// It is a hint: the ledger sources are always authoritative.
type DailySnapshot struct {
	ID               string
	ProjectID        string
	Date             time.Time
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	RemainingBalance decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewDailySnapshot builds the snapshot persisted for a single-day summary.
func NewDailySnapshot(id string, summary *FinancialSummary, day time.Time, now time.Time) *DailySnapshot {
	return &DailySnapshot{
		ID:               id,
		ProjectID:        summary.ProjectID,
		Date:             Day(day),
		TotalIncome:      summary.Income.TotalIncome,
		TotalExpenses:    summary.Expenses.TotalCashExpenses,
		RemainingBalance: summary.TotalBalance,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// SnapshotSavedEvent is published after a snapshot is written.
type SnapshotSavedEvent struct {
	SnapshotID       string          `json:"snapshot_id"`
	ProjectID        string          `json:"project_id"`
	Date             string          `json:"date"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

// EventTypeSnapshotSaved is the routing type of SnapshotSavedEvent.
const EventTypeSnapshotSaved = "snapshot.saved"

// NewSnapshotSavedEvent describes a persisted snapshot.
func NewSnapshotSavedEvent(s *DailySnapshot, at time.Time) SnapshotSavedEvent {
	return SnapshotSavedEvent{
		SnapshotID:       s.ID,
		ProjectID:        s.ProjectID,
		Date:             FormatDate(s.Date),
		TotalIncome:      s.TotalIncome,
		TotalExpenses:    s.TotalExpenses,
		RemainingBalance: s.RemainingBalance,
		OccurredAt:       at.UTC(),
	}
}
