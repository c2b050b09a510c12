package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayemen27/siteledger/internal/adapter/repository/postgres"
	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/usecase"
	"github.com/ayemen27/siteledger/tests/testutil"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestPersistSnapshotIsUpserted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	projectID := e.db.CreateProject(ctx, "Tower A")
	e.db.AddFundTransfer(ctx, projectID, "2024-01-01", dec("5000"))

	first, err := e.uc.PersistDailySnapshot(ctx, projectID, mustDay(t, "2024-01-01"))
	require.NoError(t, err)
	assert.True(t, first.RemainingBalance.Equal(dec("5000")))

	e.db.AddTransport(ctx, projectID, "2024-01-01", dec("100"))

	second, err := e.uc.PersistDailySnapshot(ctx, projectID, mustDay(t, "2024-01-01"))
	require.NoError(t, err)
	assert.True(t, second.RemainingBalance.Equal(dec("4900")))

	list, err := e.uc.ListSnapshots(ctx, projectID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].RemainingBalance.Equal(dec("4900")))
}

func TestDailySummaryUsesStoredSnapshot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	projectID := e.db.CreateProject(ctx, "Tower A")
	e.db.AddFundTransfer(ctx, projectID, "2024-01-01", dec("5000"))
	e.db.AddTransport(ctx, projectID, "2024-01-03", dec("200"))

	_, err := e.uc.PersistAllDailySnapshots(ctx, mustDay(t, "2024-01-01"))
	require.NoError(t, err)

	// The gap day 2024-01-02 has no activity, so the carried balance for
	// 2024-01-03 is the snapshot plus an empty gap.
	summary, err := e.uc.GetDailyFinancialSummary(ctx, projectID, "2024-01-03")
	require.NoError(t, err)
	assert.True(t, summary.Income.CarriedForwardBalance.Equal(dec("5000")))
	assert.True(t, summary.TotalBalance.Equal(dec("4800")))
}

func TestBackdatedInsertInvalidatesSnapshot(t *testing.T) {
	e := newEnv(t, func(db *testutil.TestDB) usecase.Option {
		return usecase.WithStalenessChecker(postgres.NewChangeDetector(db.Pool))
	})
	ctx := context.Background()

	projectID := e.db.CreateProject(ctx, "Tower A")
	e.db.AddFundTransfer(ctx, projectID, "2024-01-01", dec("5000"))

	_, err := e.uc.PersistDailySnapshot(ctx, projectID, mustDay(t, "2024-01-01"))
	require.NoError(t, err)

	// A late entry dated before the snapshot, recorded after it was taken.
	e.db.AddFundTransferRecordedAt(ctx, projectID, "2023-12-31", dec("1000"), time.Now().Add(time.Hour))

	summary, err := e.uc.GetDailyFinancialSummary(ctx, projectID, "2024-01-02")
	require.NoError(t, err)
	assert.True(t, summary.Income.CarriedForwardBalance.Equal(dec("6000")), "carried %s", summary.Income.CarriedForwardBalance)

	list, err := e.uc.ListSnapshots(ctx, projectID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
