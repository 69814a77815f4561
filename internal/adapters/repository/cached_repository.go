package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const DefaultSnapshotTTL = 30 * time.Minute

var (
	_ domain.HabitRepository    = (*CachedHabitRepository)(nil)
	_ domain.VacationRepository = (*CachedVacationRepository)(nil)
)

// readThrough serves key from Redis when it holds valid JSON, otherwise calls
// load and stores its result. Redis failures degrade to load.
func readThrough[T any](ctx context.Context, cache *redis.Client, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	val, err := cache.Get(ctx, key).Result()
	if err == nil {
		var out T
		if err := json.Unmarshal([]byte(val), &out); err == nil {
			return out, nil
		}

		log.Printf("[CACHE] Corrupted data at %s, cleaning up key", key)
		cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if data, err := json.Marshal(out); err == nil {
		if setErr := cache.Set(ctx, key, data, ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return out, nil
}

// CachedHabitRepository keeps each user's snapshot list in Redis.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
		ttl:   DefaultSnapshotTTL,
	}
}

func (r *CachedHabitRepository) cacheKey(userID string) string {
	return fmt.Sprintf("habits:%s", userID)
}

func (r *CachedHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitSnapshot, error) {
	return readThrough(ctx, r.cache, r.cacheKey(userID), r.ttl, func() ([]*domain.HabitSnapshot, error) {
		return r.next.ListByUserID(ctx, userID)
	})
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.HabitSnapshot, error) {
	return r.next.GetByID(ctx, id)
}

// Invalidate drops the user's cached snapshots after their completions change.
func (r *CachedHabitRepository) Invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

type CachedVacationRepository struct {
	next  domain.VacationRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedVacationRepository(next domain.VacationRepository, cache *redis.Client) *CachedVacationRepository {
	return &CachedVacationRepository{
		next:  next,
		cache: cache,
		ttl:   DefaultSnapshotTTL,
	}
}

func (r *CachedVacationRepository) cacheKey(userID string) string {
	return fmt.Sprintf("vacation:%s", userID)
}

func (r *CachedVacationRepository) GetByUserID(ctx context.Context, userID string) (*domain.VacationSchedule, error) {
	return readThrough(ctx, r.cache, r.cacheKey(userID), r.ttl, func() (*domain.VacationSchedule, error) {
		return r.next.GetByUserID(ctx, userID)
	})
}

func (r *CachedVacationRepository) Invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate vacation for user %s: %v", userID, err)
	}
}
