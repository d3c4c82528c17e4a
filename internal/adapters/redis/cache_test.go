package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "upahan/internal/adapters/redis"
	"upahan/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var got domain.AnalyticsSnapshot
	ok, err := c.Get(ctx, "analytics:poblacion", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	want := domain.ZeroSnapshot("Poblacion", got.GeneratedAt)
	want.Bookings.Total = 7
	if err := c.Set(ctx, "analytics:poblacion", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "analytics:poblacion", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.Barangay != "Poblacion" || got.Bookings.Total != 7 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	if err := c.Del(ctx, "analytics:poblacion"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "analytics:poblacion", &got)
	if ok {
		t.Fatalf("expected miss after del")
	}
}
