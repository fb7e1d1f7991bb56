package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/metrics"
	red "voiceclone-backend/internal/infra/redis"
)

var _ repository.PlanRepository = (*planRepoCacheDecorator)(nil)

// planRepoCacheDecorator caches plan reads in redis. Plans change rarely
// and are read on every order and on the public pricing page, so they are
// the one entity worth a cache layer.
type planRepoCacheDecorator struct {
	inner repository.PlanRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewPlanRepoCacheDecorator(inner repository.PlanRepository, cache red.RedisClient, ttl time.Duration) repository.PlanRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &planRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func planKey(id string) string { return fmt.Sprintf("plan:%s", id) }

const (
	planListAllKey    = "plans:all"
	planListActiveKey = "plans:active"
)

func (d *planRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Plan, error) {
	val, err := d.cache.Get(ctx, planKey(id))
	if err == nil {
		var plan model.Plan
		if json.Unmarshal([]byte(val), &plan) == nil {
			metrics.IncCacheRequest("plan", "hit")
			return &plan, nil
		}
	} else if err != redis.Nil {
		metrics.IncCacheRequest("plan", "error")
	}

	metrics.IncCacheRequest("plan", "miss")
	plan, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(plan); err == nil {
		_ = d.cache.Set(ctx, planKey(id), bytes, d.ttl)
	}
	return plan, nil
}

func (d *planRepoCacheDecorator) list(ctx context.Context, tx repository.Tx, key string,
	load func(context.Context, repository.Tx) ([]*model.Plan, error)) ([]*model.Plan, error) {
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		var plans []*model.Plan
		if json.Unmarshal([]byte(val), &plans) == nil {
			metrics.IncCacheRequest("plan_list", "hit")
			return plans, nil
		}
	}

	metrics.IncCacheRequest("plan_list", "miss")
	plans, err := load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(plans) > 0 {
		if bytes, err := json.Marshal(plans); err == nil {
			_ = d.cache.Set(ctx, key, bytes, d.ttl)
		}
	}
	return plans, nil
}

func (d *planRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	return d.list(ctx, tx, planListAllKey, d.inner.ListAll)
}

func (d *planRepoCacheDecorator) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	return d.list(ctx, tx, planListActiveKey, d.inner.ListActive)
}

// Writes invalidate both the per-plan entry and the list entries.
func (d *planRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, plan *model.Plan) error {
	_ = d.cache.Del(ctx, planKey(plan.ID), planListAllKey, planListActiveKey)
	return d.inner.Save(ctx, tx, plan)
}

func (d *planRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	_ = d.cache.Del(ctx, planKey(id), planListAllKey, planListActiveKey)
	return d.inner.Delete(ctx, tx, id)
}

func (d *planRepoCacheDecorator) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.Count(ctx, tx)
}
