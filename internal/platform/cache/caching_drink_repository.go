// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cocktail_backend/internal/feature/drinks/domain/entity"
	"cocktail_backend/internal/feature/drinks/usecase"
)

// CachingDrinkRepository decorates a DrinkRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingDrinkRepository struct {
	inner     usecase.DrinkRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingDrinkRepository decorates a DrinkRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "drinks".
func NewCachingDrinkRepository(rdb *redis.Client, ttl time.Duration, inner usecase.DrinkRepository, namespace string) *CachingDrinkRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "drinks"
	}
	return &CachingDrinkRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.DrinkRepository = (*CachingDrinkRepository)(nil)

// List retrieves all drinks, checking cache first then falling back to the database.
func (c *CachingDrinkRepository) List(ctx context.Context) ([]entity.Drink, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Drink
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID retrieves one drink, checking cache first then falling back to the database.
func (c *CachingDrinkRepository) FindByID(ctx context.Context, id uint) (*entity.Drink, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.itemKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Drink
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create adds a drink and invalidates the list cache.
func (c *CachingDrinkRepository) Create(ctx context.Context, drink *entity.Drink) error {
	if err := c.inner.Create(ctx, drink); err != nil {
		return err
	}
	c.invalidateList(ctx)
	return nil
}

// Update saves a drink and invalidates its cache entries.
func (c *CachingDrinkRepository) Update(ctx context.Context, drink *entity.Drink) error {
	if err := c.inner.Update(ctx, drink); err != nil {
		return err
	}
	c.invalidateItem(ctx, drink.ID)
	return nil
}

// Delete removes a drink and invalidates its cache entries.
func (c *CachingDrinkRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidateItem(ctx, id)
	return nil
}

// UpsertBatch inserts or updates drinks and invalidates all cache entries
// under the namespace, since upserted rows may touch any item.
func (c *CachingDrinkRepository) UpsertBatch(ctx context.Context, drinks []entity.Drink) error {
	if err := c.inner.UpsertBatch(ctx, drinks); err != nil {
		return err
	}
	if c.rdb == nil || len(drinks) == 0 {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
	return nil
}

func (c *CachingDrinkRepository) listKey() string {
	return c.namespace + ":all"
}

func (c *CachingDrinkRepository) itemKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingDrinkRepository) invalidateList(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey()).Err()
}

func (c *CachingDrinkRepository) invalidateItem(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.itemKey(id), c.listKey()).Err()
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingDrinkRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
