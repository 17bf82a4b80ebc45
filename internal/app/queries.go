package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hoteai/internal/domain"
)

// QueryService serves the read-side projections with a TTL cache in front.
// Date-filtered queries bypass the cache: their key space is unbounded and
// the dashboard's default views never carry date filters.
type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListReviews(ctx context.Context, q domain.ReviewsQuery) ([]domain.ReviewView, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	key := ""
	if cacheable(q) {
		key = fmt.Sprintf("reviews:%s:%d", scopeKey(q), limit)
		var out []domain.ReviewView
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	rs, err := s.repo.ListReviews(ctx, q)
	if err != nil {
		return nil, err
	}

	if key != "" {
		// copy before caching so callers can't mutate the cached value
		cp := make([]domain.ReviewView, len(rs))
		copy(cp, rs)
		if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
		}
	}
	return rs, nil
}

func (s *QueryService) QualityOverTime(ctx context.Context, q domain.ReviewsQuery) ([]domain.QualityPoint, error) {
	key := ""
	if cacheable(q) {
		key = "quality:" + scopeKey(q)
		var out []domain.QualityPoint
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	pts, err := s.repo.QualityOverTime(ctx, q)
	if err != nil {
		return nil, err
	}

	if key != "" {
		cp := make([]domain.QualityPoint, len(pts))
		copy(cp, pts)
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return pts, nil
}

func cacheable(q domain.ReviewsQuery) bool {
	return q.From == nil && q.To == nil && q.ChainID == nil
}

func scopeKey(q domain.ReviewsQuery) string {
	if q.HotelID != nil {
		return fmt.Sprintf("h%d", *q.HotelID)
	}
	return "all"
}
