package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayemen27/siteledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDailySummaryCarriesPreviousBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	projectID := e.db.CreateProject(ctx, "Tower A")
	worker := e.db.CreateWorker(ctx, "Saleh", true)

	e.db.AddFundTransfer(ctx, projectID, "2024-01-01", dec("5000"))
	e.db.AddMaterialPurchase(ctx, projectID, "2024-01-02", "نقداً", dec("1200"), dec("0"))
	e.db.AddMaterialPurchase(ctx, projectID, "2024-01-02", "آجل", dec("900"), dec("0"))
	e.db.AddAttendance(ctx, projectID, worker, "2024-01-02", dec("250"))
	e.db.AddTransport(ctx, projectID, "2024-01-02", dec("40"))

	summary, err := e.uc.GetDailyFinancialSummary(ctx, projectID, "2024-01-02")
	require.NoError(t, err)

	assert.True(t, summary.Income.CarriedForwardBalance.Equal(dec("5000")), "carried %s", summary.Income.CarriedForwardBalance)
	assert.True(t, summary.Income.TotalIncome.IsZero())
	assert.True(t, summary.Expenses.MaterialExpenses.Equal(dec("1200")))
	assert.True(t, summary.Expenses.MaterialExpensesCredit.Equal(dec("900")))
	assert.True(t, summary.Expenses.WorkerWages.Equal(dec("250")))
	assert.True(t, summary.Expenses.TotalCashExpenses.Equal(dec("1490")))
	assert.True(t, summary.TotalBalance.Equal(dec("3510")), "balance %s", summary.TotalBalance)
	assert.Equal(t, int64(1), summary.Workers.TotalWorkers)
	assert.Equal(t, int64(1), summary.Counts.MaterialCredit)
}

func TestCumulativeSummaryIncludesProjectTransfers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a := e.db.CreateProject(ctx, "Tower A")
	b := e.db.CreateProject(ctx, "Tower B")

	e.db.AddFundTransfer(ctx, a, "2024-01-01", dec("3000"))
	e.db.AddProjectTransfer(ctx, a, b, "2024-01-03", dec("700"))
	e.db.AddMiscExpense(ctx, b, "2024-01-04", dec("100"))

	sumA, err := e.uc.GetProjectFinancialSummary(ctx, a, "", "", "")
	require.NoError(t, err)
	assert.True(t, sumA.Expenses.OutgoingProjectTransfers.Equal(dec("700")))
	assert.True(t, sumA.TotalBalance.Equal(dec("2300")), "A balance %s", sumA.TotalBalance)

	sumB, err := e.uc.GetProjectFinancialSummary(ctx, b, "", "", "")
	require.NoError(t, err)
	assert.True(t, sumB.Income.IncomingProjectTransfers.Equal(dec("700")))
	assert.True(t, sumB.TotalBalance.Equal(dec("600")), "B balance %s", sumB.TotalBalance)

	total, err := e.uc.GetTotalDailyFinancialSummary(ctx, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, domain.AllProjectsID, total.ProjectID)
}

func TestUnknownProject(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.GetProjectFinancialSummary(context.Background(), "missing-project", "", "", "")
	assert.True(t, errors.Is(err, domain.ErrProjectNotFound), "got %v", err)
}

func TestTimestampShapedTextDatesLandInOneDay(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	projectID := e.db.CreateProject(ctx, "Tower A")
	worker := e.db.CreateWorker(ctx, "Saleh", true)

	e.db.AddFundTransfer(ctx, projectID, "2024-01-01", dec("5000"))
	e.db.AddTransport(ctx, projectID, "2024-01-02 00:00:00", dec("40"))
	e.db.AddAttendance(ctx, projectID, worker, "2024-01-02 00:00:00", dec("250"))

	day2, err := e.uc.GetDailyFinancialSummary(ctx, projectID, "2024-01-02")
	require.NoError(t, err)
	assert.True(t, day2.Expenses.TransportExpenses.Equal(dec("40")), "transport %s", day2.Expenses.TransportExpenses)
	assert.True(t, day2.Expenses.WorkerWages.Equal(dec("250")), "wages %s", day2.Expenses.WorkerWages)
	assert.True(t, day2.Income.CarriedForwardBalance.Equal(dec("5000")), "carried %s", day2.Income.CarriedForwardBalance)

	day3, err := e.uc.GetDailyFinancialSummary(ctx, projectID, "2024-01-03")
	require.NoError(t, err)
	assert.True(t, day3.Income.CarriedForwardBalance.Equal(dec("4710")), "carried %s", day3.Income.CarriedForwardBalance)
	assert.True(t, day3.Expenses.TotalCashExpenses.IsZero())

	// A range closing on the day counts the rows exactly once.
	ranged, err := e.uc.GetProjectFinancialSummary(ctx, projectID, "", "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	assert.True(t, ranged.TotalBalance.Equal(dec("4710")), "range balance %s", ranged.TotalBalance)
}
