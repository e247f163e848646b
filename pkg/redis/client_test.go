package redis

import (
	"context"
	"testing"
	"time"

	"github.com/mcastellon/shopora-backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]string
}

func (f *fakeStore) Ping(ctx context.Context) *redislib.StatusCmd {
	return redislib.NewStatusResult("PONG", nil)
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) *redislib.StatusCmd {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value.(string)
	return redislib.NewStatusResult("OK", nil)
}

func (f *fakeStore) Get(ctx context.Context, key string) *redislib.StringCmd {
	if val, ok := f.values[key]; ok {
		return redislib.NewStringResult(val, nil)
	}
	return redislib.NewStringResult("", redislib.Nil)
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *redislib.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return redislib.NewIntResult(removed, nil)
}

func TestSessionKeyNamespacing(t *testing.T) {
	c := NewWithStore(&fakeStore{})
	got := c.SessionKey("abc", "coupon")
	want := "shopora:session:abc:coupon"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGetReportsMissingKeys(t *testing.T) {
	c := NewWithStore(&fakeStore{})
	ctx := context.Background()

	_, found, err := c.Get(ctx, "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected missing key")
	}

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found, err := c.Get(ctx, "k")
	if err != nil || !found || val != "v" {
		t.Fatalf("unexpected get result: %q %v %v", val, found, err)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Fatalf("key should be gone after del")
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty config")
	}
	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.PoolSize != 5 {
		t.Fatalf("options not applied: %+v", opts)
	}
}
