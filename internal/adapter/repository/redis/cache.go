package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
	"github.com/ayemen27/siteledger/internal/usecase"
)

const reloadPageSize = 1000

// SnapshotCache mirrors a project's snapshots in Redis in front of the
// durable store. Each project is held as a sorted set of days (score is
// the day number) and a hash of encoded snapshots. Writes drop the mirror;
// the next read reloads it.
//
// The store is authoritative: a failed invalidation does not fail the
// write. The project is marked dirty instead and its mirror is bypassed
// until an invalidation succeeds.
type SnapshotCache struct {
	client  *redis.Client
	store   usecase.SnapshotStore
	ttl     time.Duration
	prefix  string
	logger  zerolog.Logger
	metrics *metrics.Metrics

	dirty sync.Map // project ID -> struct{}
}

// NewSnapshotCache wraps store with a Redis mirror. m may be nil.
func NewSnapshotCache(client *redis.Client, store usecase.SnapshotStore, ttl time.Duration, logger zerolog.Logger, m *metrics.Metrics) *SnapshotCache {
	return &SnapshotCache{
		client:  client,
		store:   store,
		ttl:     ttl,
		prefix:  "siteledger:snapshots:",
		logger:  logger,
		metrics: m,
	}
}

type cacheKeys struct {
	index   string
	data    string
	loaded  string
	version string
}

func (c *SnapshotCache) keys(projectID string) cacheKeys {
	base := c.prefix + projectID
	return cacheKeys{
		index:   base + ":index",
		data:    base + ":data",
		loaded:  base + ":loaded",
		version: base + ":version",
	}
}

type cachedSnapshot struct {
	ID               string          `json:"id"`
	ProjectID        string          `json:"project_id"`
	Date             string          `json:"date"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func encodeSnapshot(s *domain.DailySnapshot) ([]byte, error) {
	return json.Marshal(cachedSnapshot{
		ID:               s.ID,
		ProjectID:        s.ProjectID,
		Date:             domain.FormatDate(s.Date),
		TotalIncome:      s.TotalIncome,
		TotalExpenses:    s.TotalExpenses,
		RemainingBalance: s.RemainingBalance,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	})
}

func decodeSnapshot(b []byte) (*domain.DailySnapshot, error) {
	var cs cachedSnapshot
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, err
	}

	day, err := domain.ParseDate(cs.Date)
	if err != nil {
		return nil, err
	}

	return &domain.DailySnapshot{
		ID:               cs.ID,
		ProjectID:        cs.ProjectID,
		Date:             day,
		TotalIncome:      cs.TotalIncome,
		TotalExpenses:    cs.TotalExpenses,
		RemainingBalance: cs.RemainingBalance,
		CreatedAt:        cs.CreatedAt,
		UpdatedAt:        cs.UpdatedAt,
	}, nil
}

// LatestBefore serves from the mirror, reloading it from the store when absent.
// Redis failures fall through to the store.
func (c *SnapshotCache) LatestBefore(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error) {
	if !c.clean(ctx, projectID) {
		c.observe("bypass")
		return c.store.LatestBefore(ctx, projectID, day)
	}

	snap, hit, err := c.latestFromMirror(ctx, projectID, day)
	if err == nil && hit {
		c.observe("hit")
		if snap == nil {
			return nil, domain.ErrSnapshotNotFound
		}
		return snap, nil
	}

	if err != nil {
		c.observe("error")
		c.logger.Warn().Err(err).Str("project_id", projectID).Msg("snapshot cache read failed")
		return c.store.LatestBefore(ctx, projectID, day)
	}

	c.observe("miss")

	if err := c.reload(ctx, projectID); err != nil {
		if !errors.Is(err, redis.TxFailedErr) {
			c.logger.Warn().Err(err).Str("project_id", projectID).Msg("snapshot cache reload failed")
		}
	}

	return c.store.LatestBefore(ctx, projectID, day)
}

// latestFromMirror reports hit=false when the project is not mirrored.
// A hit with a nil snapshot means the project has none before day.
func (c *SnapshotCache) latestFromMirror(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, bool, error) {
	k := c.keys(projectID)

	n, err := c.client.Exists(ctx, k.loaded).Result()
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, nil
	}

	members, err := c.client.ZRevRangeByScore(ctx, k.index, &redis.ZRangeBy{
		Max:   strconv.FormatInt(domain.DayNumber(day)-1, 10),
		Min:   "-inf",
		Count: 1,
	}).Result()
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, true, nil
	}

	raw, err := c.client.HGet(ctx, k.data, members[0]).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// index and data disagree; treat as not mirrored
			return nil, false, nil
		}
		return nil, false, err
	}

	snap, err := decodeSnapshot(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached snapshot %s: %w", members[0], err)
	}

	return snap, true, nil
}

// reload rebuilds the mirror from the store. The write is abandoned with
// redis.TxFailedErr when an invalidation raced the load.
func (c *SnapshotCache) reload(ctx context.Context, projectID string) error {
	k := c.keys(projectID)

	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		var all []*domain.DailySnapshot
		for offset := 0; ; offset += reloadPageSize {
			page, err := c.store.ListByProject(ctx, projectID, reloadPageSize, offset)
			if err != nil {
				return err
			}
			all = append(all, page...)
			if len(page) < reloadPageSize {
				break
			}
		}

		members := make([]redis.Z, 0, len(all))
		fields := make(map[string]interface{}, len(all))
		for _, s := range all {
			b, err := encodeSnapshot(s)
			if err != nil {
				return err
			}
			date := domain.FormatDate(s.Date)
			members = append(members, redis.Z{Score: float64(domain.DayNumber(s.Date)), Member: date})
			fields[date] = b
		}

		_, err := tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Del(ctx, k.index, k.data)
			if len(members) > 0 {
				p.ZAdd(ctx, k.index, members...)
				p.HSet(ctx, k.data, fields)
				p.Expire(ctx, k.index, c.ttl)
				p.Expire(ctx, k.data, c.ttl)
			}
			p.Set(ctx, k.loaded, "1", c.ttl)
			return nil
		})

		return err
	}, k.version)
}

// Invalidate drops the project's mirror.
func (c *SnapshotCache) Invalidate(ctx context.Context, projectID string) error {
	k := c.keys(projectID)

	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, k.version)
		p.Expire(ctx, k.version, c.ttl)
		p.Del(ctx, k.loaded, k.index, k.data)
		return nil
	})

	return err
}

// invalidate drops the mirror after a store write. On failure the project
// is marked dirty and the write still succeeds.
func (c *SnapshotCache) invalidate(ctx context.Context, projectID string) {
	if err := c.Invalidate(ctx, projectID); err != nil {
		c.dirty.Store(projectID, struct{}{})
		c.observe("invalidate_error")
		c.logger.Warn().Err(err).Str("project_id", projectID).Msg("snapshot cache invalidation failed, bypassing mirror")
		return
	}
	c.dirty.Delete(projectID)
}

// clean reports whether the project's mirror may be read, retrying a
// pending invalidation first.
func (c *SnapshotCache) clean(ctx context.Context, projectID string) bool {
	if _, ok := c.dirty.Load(projectID); !ok {
		return true
	}
	if err := c.Invalidate(ctx, projectID); err != nil {
		return false
	}
	c.dirty.Delete(projectID)
	return true
}

// Save writes through and invalidates.
func (c *SnapshotCache) Save(ctx context.Context, s *domain.DailySnapshot) (*domain.DailySnapshot, error) {
	saved, err := c.store.Save(ctx, s)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, s.ProjectID)
	return saved, nil
}

// Delete writes through and invalidates.
func (c *SnapshotCache) Delete(ctx context.Context, projectID string, day time.Time) (bool, error) {
	deleted, err := c.store.Delete(ctx, projectID, day)
	if err != nil {
		return false, err
	}

	c.invalidate(ctx, projectID)
	return deleted, nil
}

// DeleteFrom writes through and invalidates.
func (c *SnapshotCache) DeleteFrom(ctx context.Context, projectID string, day time.Time) (int64, error) {
	n, err := c.store.DeleteFrom(ctx, projectID, day)
	if err != nil {
		return 0, err
	}

	c.invalidate(ctx, projectID)
	return n, nil
}

// ListByProject is not cached.
func (c *SnapshotCache) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.DailySnapshot, error) {
	return c.store.ListByProject(ctx, projectID, limit, offset)
}

func (c *SnapshotCache) observe(result string) {
	if c.metrics != nil {
		c.metrics.SnapshotCacheHits.WithLabelValues(result).Inc()
	}
}
