package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cocktail_backend/internal/feature/drinks/adapters"
	"cocktail_backend/internal/feature/drinks/usecase"
	"cocktail_backend/internal/platform/cache"
)

// NewDrinkRepository creates a DrinkRepository implementation.
// If Redis is available, the MySQL repository is wrapped with a caching
// decorator. Otherwise, the plain MySQL repository is returned.
func NewDrinkRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.DrinkRepository {
	inner := adapters.NewDrinkRepository(db)
	if rdb != nil {
		return cache.NewCachingDrinkRepository(rdb, ttl, inner, "drinks")
	}
	return inner
}
