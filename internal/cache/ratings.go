package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// nil ratings (a title with no reviews) are cached too, under a sentinel
// value, so zero-review titles do not hit the database on every read.
const noRating = "none"

// RatingCache memoizes per-title average scores in redis with a TTL.
// A nil *RatingCache is valid and behaves as a permanent cache miss, so
// callers never need to branch on whether redis is configured.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRatingCache(addr, password string, ttl time.Duration) (*RatingCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RatingCache{client: rdb, ttl: ttl}, nil
}

func ratingKey(titleID int64) string {
	return fmt.Sprintf("rating:title:%d", titleID)
}

// Get returns the cached rating for a title. The second return value is
// false on a miss (or when the cache is disabled); a true with a nil
// rating means "cached as no reviews".
func (c *RatingCache) Get(ctx context.Context, titleID int64) (*float64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err != nil {
		return nil, false
	}
	if val == noRating {
		return nil, true
	}
	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

// Set stores the rating for a title; a nil rating marks a title without
// reviews.
func (c *RatingCache) Set(ctx context.Context, titleID int64, rating *float64) {
	if c == nil || c.client == nil {
		return
	}
	val := noRating
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	// cache write failures are invisible to callers; the next read just
	// misses and recomputes
	c.client.Set(ctx, ratingKey(titleID), val, c.ttl)
}

// Invalidate drops the cached rating after a review write or title delete.
func (c *RatingCache) Invalidate(ctx context.Context, titleID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, ratingKey(titleID))
}

func (c *RatingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
