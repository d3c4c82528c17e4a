package app_test

import (
	"context"
	"testing"
	"time"

	"upahan/internal/app"
	"upahan/internal/domain"
)

type fakeCache struct {
	store map[string]domain.AnalyticsSnapshot
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.AnalyticsSnapshot); ok {
		*d = v
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]domain.AnalyticsSnapshot{}
	}
	if s, ok := v.(domain.AnalyticsSnapshot); ok {
		c.store[key] = s
	}
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func TestBarangayReport_CacheMissThenHit(t *testing.T) {
	st := newFakeStore().
		add(domain.ColListings, listingDoc("l1", "o1", "Poblacion", "available", "", 4000))
	cache := &fakeCache{}
	svc := app.NewReportService(app.NewAnalytics(st), cache, 10*time.Minute)

	first := svc.BarangayReport(context.Background(), "Poblacion")
	if first.Properties.Total != 1 {
		t.Fatalf("unexpected report: %+v", first.Properties)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache set, got %d", cache.sets)
	}

	// Mutate the store; a second read must come from cache.
	st.add(domain.ColListings, listingDoc("l2", "o1", "Poblacion", "available", "", 4000))
	second := svc.BarangayReport(context.Background(), " POBLACION ") // key normalizes
	if second.Properties.Total != 1 {
		t.Fatalf("expected cached report, got %+v", second.Properties)
	}

	// Refresh bypasses the cache and re-stores.
	third := svc.Refresh(context.Background(), "Poblacion")
	if third.Properties.Total != 2 {
		t.Fatalf("expected fresh report, got %+v", third.Properties)
	}
	fourth := svc.BarangayReport(context.Background(), "Poblacion")
	if fourth.Properties.Total != 2 {
		t.Fatalf("expected refreshed cache, got %+v", fourth.Properties)
	}
}

func TestBarangayReport_NilCache(t *testing.T) {
	st := newFakeStore().
		add(domain.ColListings, listingDoc("l1", "o1", "Poblacion", "available", "", 4000))
	svc := app.NewReportService(app.NewAnalytics(st), nil, time.Minute)

	snap := svc.BarangayReport(context.Background(), "Poblacion")
	if snap.Properties.Total != 1 {
		t.Fatalf("unexpected report: %+v", snap.Properties)
	}
}

func TestBarangays_Distinct(t *testing.T) {
	st := newFakeStore().
		add(domain.ColListings,
			listingDoc("l1", "o1", "Poblacion", "available", "", 4000),
			listingDoc("l2", "o1", " poblacion ", "available", "", 4000), // same after normalization
			listingDoc("l3", "o2", "San Isidro", "available", "", 4000),
		).
		add(domain.ColUsers, userDoc("u1", "X", "", "Bagong Silang"))
	svc := app.NewReportService(app.NewAnalytics(st), nil, time.Minute)

	names, err := svc.Barangays(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("expected 3 distinct barangays, got %v", names)
	}
}
