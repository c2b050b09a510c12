package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/ayemen27/siteledger/internal/usecase"
)

// JobLock implements usecase.JobLocker. It runs jobs under a Redis lock so only one replica executes them.
type JobLock struct {
	locker *redislock.Client
	prefix string
}

// NewJobLock creates a new JobLock.
func NewJobLock(client *redis.Client) *JobLock {
	return &JobLock{
		locker: redislock.New(client),
		prefix: "siteledger:lock:",
	}
}

// Run obtains the named lock for ttl, runs fn and releases the lock.
func (l *JobLock) Run(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error {
	lock, err := l.locker.Obtain(ctx, l.prefix+name, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return usecase.ErrLockHeld
	}
	if err != nil {
		return fmt.Errorf("obtain lock %s: %w", name, err)
	}

	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	return fn(ctx)
}
