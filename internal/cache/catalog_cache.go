// Package cache keeps the public course listing in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/enrollment-service/internal/domain"
)

const (
	listingsKey   = "catalog:courses:all"
	generationKey = "catalog:courses:generation"
)

// staleGeneration is returned when no generation could be read. It never
// matches a stored counter, so a listing fetched under it is not cached.
const staleGeneration int64 = -1

var errStaleListing = errors.New("catalog changed since listing was read")

// CatalogCache caches the joined course listing. Redis failures are logged and
// treated as cache misses; the database stays the source of truth.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache builds a cache. A nil client or non-positive ttl disables it.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

type cachedListing struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoLink   string    `json:"video_link"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Listings returns the cached listing and whether it was present. On a miss
// it also returns the catalog generation observed, which the caller hands back
// to StoreListings once it has loaded the listing from the database.
func (c *CatalogCache) Listings(ctx context.Context) ([]domain.CourseListing, int64, bool) {
	if !c.enabled() {
		return nil, staleGeneration, false
	}
	values, err := c.client.MGet(ctx, generationKey, listingsKey).Result()
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.Error(err))
		return nil, staleGeneration, false
	}
	generation, err := parseGeneration(values[0])
	if err != nil {
		c.logger.Warn("catalog cache generation corrupt", zap.Error(err))
		return nil, staleGeneration, false
	}
	raw, ok := values[1].(string)
	if !ok {
		return nil, generation, false
	}

	var cached []cachedListing
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.logger.Warn("catalog cache entry corrupt", zap.Error(err))
		return nil, generation, false
	}
	listings := make([]domain.CourseListing, 0, len(cached))
	for _, item := range cached {
		listings = append(listings, domain.CourseListing{
			Course: domain.Course{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				VideoLink:   item.VideoLink,
				CompanyID:   item.CompanyID,
				CreatedAt:   item.CreatedAt,
			},
			CompanyName: item.CompanyName,
		})
	}
	return listings, generation, true
}

// StoreListings caches the listing for the configured ttl, but only while the
// catalog is still at generation. A listing read before a concurrent
// Invalidate is dropped.
func (c *CatalogCache) StoreListings(ctx context.Context, generation int64, listings []domain.CourseListing) {
	if !c.enabled() || generation == staleGeneration {
		return
	}
	cached := make([]cachedListing, 0, len(listings))
	for _, l := range listings {
		cached = append(cached, cachedListing{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			VideoLink:   l.VideoLink,
			CompanyID:   l.CompanyID,
			CompanyName: l.CompanyName,
			CreatedAt:   l.CreatedAt,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", zap.Error(err))
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if errors.Is(err, redis.Nil) {
			current, err = 0, nil
		}
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleListing
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listingsKey, raw, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleListing), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("catalog cache write skipped; listing is stale", zap.Int64("generation", generation))
	default:
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing after a catalog mutation and advances
// the generation so in-flight reads cannot store their older snapshot.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, listingsKey)
		return nil
	})
	if err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// parseGeneration reads the counter as stored by INCR. A missing key is zero.
func parseGeneration(value any) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case string:
		if v == "" {
			return 0, nil
		}
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, errors.New("unexpected generation type")
	}
}
