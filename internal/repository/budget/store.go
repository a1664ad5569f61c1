// Package budget persists generation token counters in the shared key/value store.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/lexrelay/internal/db"
)

// Recommended TTLs: a daily key outlives its day, a monthly key its month.
const (
	DailyTTL   = 48 * time.Hour
	MonthlyTTL = 62 * 24 * time.Hour
)

// counters is the consumer interface for budget operations.
type counters interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrByWithTTL(ctx context.Context, key string, val int64, ttl time.Duration) (int64, error)
}

// Store implements generation.BudgetStore (INCRBY + EXPIRE NX, GET).
type Store struct {
	kv       counters
	dailyTTL time.Duration
	monthTTL time.Duration
}

// New creates a budget store. Zero TTLs fall back to DailyTTL and MonthlyTTL.
func New(kv counters, dailyTTL, monthTTL time.Duration) *Store {
	if dailyTTL <= 0 {
		dailyTTL = DailyTTL
	}
	if monthTTL <= 0 {
		monthTTL = MonthlyTTL
	}
	return &Store{kv: kv, dailyTTL: dailyTTL, monthTTL: monthTTL}
}

// IncrBy atomically increments the counter. The TTL is set once, on first write.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if _, err := s.kv.IncrByWithTTL(ctx, key, val, s.ttlForKey(key)); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}
	return nil
}

// Get returns the counter value. A missing key reads as 0.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget get %s parse: %w", key, err)
	}
	return val, nil
}

// ttlForKey picks the TTL from the key window (...:daily:... or ...:monthly:...).
func (s *Store) ttlForKey(key string) time.Duration {
	if strings.Contains(key, ":daily:") {
		return s.dailyTTL
	}
	return s.monthTTL
}
