package integration

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ayemen27/siteledger/internal/adapter/repository/postgres"
	redisrepo "github.com/ayemen27/siteledger/internal/adapter/repository/redis"
	"github.com/ayemen27/siteledger/internal/usecase"
	"github.com/ayemen27/siteledger/tests/testutil"
)

type env struct {
	db        *testutil.TestDB
	uc        *usecase.FinancialUseCase
	snapshots *postgres.SnapshotRepository
	redis     *goredis.Client
}

// newEnv wires the engine against the test database, with the snapshot
// cache backed by an in-process Redis.
func newEnv(t *testing.T, optFns ...func(db *testutil.TestDB) usecase.Option) *env {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)
	db.TruncateAll(ctx)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	snapshots := postgres.NewSnapshotRepository(db.Pool)
	cache := redisrepo.NewSnapshotCache(client, snapshots, time.Hour, logger, nil)
	sources := postgres.NewSourceRepository(db.Pool, postgres.NewRetrier(logger), nil)

	opts := make([]usecase.Option, 0, len(optFns))
	for _, fn := range optFns {
		opts = append(opts, fn(db))
	}

	uc := usecase.NewFinancialUseCase(
		postgres.NewProjectRepository(db.Pool),
		cache,
		sources.Sources(),
		postgres.NewULIDGenerator(),
		logger,
		nil,
		opts...,
	)

	return &env{db: db, uc: uc, snapshots: snapshots, redis: client}
}
