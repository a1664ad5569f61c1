package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/lexrelay/internal/db"
	"github.com/kailas-cloud/lexrelay/internal/db/redis"
)

type fakeCounters struct {
	values map[string]int64
	ttls   map[string]time.Duration
	raw    map[string][]byte
	err    error
}

func newFake() *fakeCounters {
	return &fakeCounters{
		values: map[string]int64{},
		ttls:   map[string]time.Duration{},
		raw:    map[string][]byte{},
	}
}

func (f *fakeCounters) Get(_ context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.raw[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeCounters) IncrByWithTTL(_ context.Context, key string, val int64, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.values[key] += val
	if _, ok := f.ttls[key]; !ok {
		f.ttls[key] = ttl
	}
	return f.values[key], nil
}

func TestStore_IncrBy_TTLByWindow(t *testing.T) {
	kv := newFake()
	s := New(kv, 0, 0)

	daily := "lexrelay:budget:generation:daily:2026-10-15"
	monthly := "lexrelay:budget:generation:monthly:2026-10"
	if err := s.IncrBy(context.Background(), daily, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.IncrBy(context.Background(), monthly, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kv.ttls[daily] != DailyTTL {
		t.Errorf("daily ttl = %s, want %s", kv.ttls[daily], DailyTTL)
	}
	if kv.ttls[monthly] != MonthlyTTL {
		t.Errorf("monthly ttl = %s, want %s", kv.ttls[monthly], MonthlyTTL)
	}
}

func TestStore_IncrBy_Error(t *testing.T) {
	kv := newFake()
	kv.err = errors.New("connection refused")

	if err := New(kv, 0, 0).IncrBy(context.Background(), "k", 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestStore_Get(t *testing.T) {
	kv := newFake()
	kv.raw["present"] = []byte("1500")
	kv.raw["garbage"] = []byte("abc")
	s := New(kv, 0, 0)

	if v, err := s.Get(context.Background(), "present"); err != nil || v != 1500 {
		t.Errorf("Get(present) = %d, %v", v, err)
	}
	if v, err := s.Get(context.Background(), "missing"); err != nil || v != 0 {
		t.Errorf("Get(missing) = %d, %v", v, err)
	}
	if _, err := s.Get(context.Background(), "garbage"); err == nil {
		t.Error("expected parse error")
	}
}

func TestStore_WithRedisMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(25)),
			mock.Result(mock.RedisInt64(1)),
		})
	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "lexrelay:budget:generation:daily:2026-10-15")).
		Return(mock.Result(mock.RedisBlobString("25")))

	s := New(redis.NewStoreForTest(c), 0, 0)
	if err := s.IncrBy(context.Background(), "lexrelay:budget:generation:daily:2026-10-15", 25); err != nil {
		t.Fatalf("IncrBy: %v", err)
	}
	v, err := s.Get(context.Background(), "lexrelay:budget:generation:daily:2026-10-15")
	if err != nil || v != 25 {
		t.Fatalf("Get = %d, %v", v, err)
	}
}
