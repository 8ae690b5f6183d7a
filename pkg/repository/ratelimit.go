package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RateLimitRepository keeps fixed-window request counters per client ip
type RateLimitRepository struct {
	db *sqlx.DB
}

// NewRateLimitRepository creates a new rate limiter repository
func NewRateLimitRepository(db *sqlx.DB) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

// Hit registers a request from ip at the given time and returns the number of hits in the
// current window, including this one. A window older than the given size starts over.
// The read-modify-write is a single upsert statement, so concurrent hits are never lost.
func (r *RateLimitRepository) Hit(ctx context.Context, ip string, window time.Duration, now time.Time) (int, error) {
	nowSec := now.Unix()
	expired := now.Add(-window).Unix()

	query := `
		INSERT INTO rate_limiter (ip_address, hit_count, window_start) VALUES (?, 1, ?)
		ON CONFLICT(ip_address) DO UPDATE SET
			hit_count = CASE WHEN rate_limiter.window_start <= ? THEN 1 ELSE rate_limiter.hit_count + 1 END,
			window_start = CASE WHEN rate_limiter.window_start <= ? THEN excluded.window_start ELSE rate_limiter.window_start END
		RETURNING hit_count
	`
	var hits int
	err := retryOnLock(ctx, func() error {
		return r.db.GetContext(ctx, &hits, query, ip, nowSec, expired, expired)
	})
	if err != nil {
		return 0, fmt.Errorf("rate limit hit: %w", err)
	}
	return hits, nil
}

// Cleanup removes counters whose window started before the given time
func (r *RateLimitRepository) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM rate_limiter WHERE window_start < ?", before.Unix())
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("rate limit cleanup: %w", err)
	}
	return deleted, nil
}
