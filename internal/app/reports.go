package app

import (
	"context"
	"time"

	"upahan/internal/domain"
)

// ReportService fronts the analytics engine with a read-through snapshot
// cache. Like the engine itself it never returns an error: a cache outage
// just means a fresh computation.
type ReportService struct {
	analytics *Analytics
	cache     domain.Cache
	cacheTTL  time.Duration
}

func NewReportService(a *Analytics, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{analytics: a, cache: c, cacheTTL: ttl}
}

func reportKey(barangay string) string {
	return "analytics:" + normBarangay(barangay)
}

func (s *ReportService) BarangayReport(ctx context.Context, barangay string) domain.AnalyticsSnapshot {
	key := reportKey(barangay)
	var snap domain.AnalyticsSnapshot
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &snap); ok {
			return snap
		}
	}
	snap = s.analytics.ComputeAnalytics(ctx, barangay)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, snap, int(s.cacheTTL.Seconds()))
	}
	return snap
}

// Refresh recomputes past the cache and stores the fresh snapshot. The cache
// warmer uses it so readers never pay the compute cost.
func (s *ReportService) Refresh(ctx context.Context, barangay string) domain.AnalyticsSnapshot {
	snap := s.analytics.ComputeAnalytics(ctx, barangay)
	if s.cache != nil {
		_ = s.cache.Set(ctx, reportKey(barangay), snap, int(s.cacheTTL.Seconds()))
	}
	return snap
}

func (s *ReportService) Invalidate(ctx context.Context, barangay string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, reportKey(barangay))
	}
}

// Barangays passes through to the engine's distinct-barangay listing.
func (s *ReportService) Barangays(ctx context.Context) ([]string, error) {
	return s.analytics.Barangays(ctx)
}
