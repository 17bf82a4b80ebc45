package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "hoteai/internal/adapters/redis"
	"hoteai/internal/domain"
)

func newTestCache(t *testing.T) *redisad.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0)
}

func TestCache_SetGetDel(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	in := []domain.QualityPoint{{Date: "2024-08-13", AvgQuality: 91.67}}
	if err := c.Set(ctx, "quality:all", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []domain.QualityPoint
	ok, err := c.Get(ctx, "quality:all", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Date != "2024-08-13" || out[0].AvgQuality != 91.67 {
		t.Fatalf("round trip: %+v", out)
	}

	if err := c.Del(ctx, "quality:all"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "quality:all", &out); ok {
		t.Fatal("key should be gone after Del")
	}
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c := newTestCache(t)

	var out []domain.ReviewView
	ok, err := c.Get(context.Background(), "reviews:all:50", &out)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}
