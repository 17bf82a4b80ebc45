package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hoteai/internal/domain"
)

// IngestDefaults fills the fields a review page cannot supply about its own
// hotel: first-sight hotels get these location and chain values.
type IngestDefaults struct {
	Location string
	ChainID  int64
}

type IngestStats struct {
	Total    int
	Upserted int
	Failed   int
}

// IngestService drives raw HTML -> extractor -> idempotent store writes.
type IngestService struct {
	fetcher   domain.PageFetcher
	extractor domain.Extractor
	repo      domain.ReviewRepository
	cache     domain.Cache
	defaults  IngestDefaults
}

func NewIngestService(f domain.PageFetcher, e domain.Extractor, r domain.ReviewRepository, c domain.Cache, d IngestDefaults) *IngestService {
	return &IngestService{fetcher: f, extractor: e, repo: r, cache: c, defaults: d}
}

// IngestURL downloads the page and ingests it. A transport failure
// propagates; an empty or reshaped page does not (zero records is a
// degradation, not an error).
func (s *IngestService) IngestURL(ctx context.Context, url, hotelNameHint string) (IngestStats, error) {
	html, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		return IngestStats{}, fmt.Errorf("fetch page: %w", err)
	}
	return s.IngestHTML(ctx, html, hotelNameHint)
}

// IngestHTML extracts review records and upserts them in extraction order.
// One record's failure is logged and tallied, never aborts the rest.
func (s *IngestService) IngestHTML(ctx context.Context, html, hotelNameHint string) (IngestStats, error) {
	records, err := s.extractor.Extract(html, hotelNameHint)
	if err != nil {
		return IngestStats{}, fmt.Errorf("extract: %w", err)
	}

	stats := IngestStats{Total: len(records)}
	if len(records) == 0 {
		log.Warn().Msg("no review blocks on page: empty page or markup drift")
		return stats, nil
	}

	touched := map[int64]struct{}{}
	for i, rec := range records {
		hotelID, err := s.repo.FindOrCreateHotel(ctx, rec.HotelName, s.defaults.Location, s.defaults.ChainID)
		if err != nil {
			log.Warn().Int("index", i).Str("hotel", rec.HotelName).Err(err).Msg("hotel resolution failed")
			stats.Failed++
			continue
		}
		id, err := s.repo.UpsertReview(ctx, rec, hotelID)
		if err != nil {
			log.Warn().Int("index", i).Str("reviewer", rec.ReviewerName).Err(err).Msg("review upsert failed")
			stats.Failed++
			continue
		}
		log.Info().Int64("review_id", id).Str("reviewer", rec.ReviewerName).Msg("review upserted")
		stats.Upserted++
		touched[hotelID] = struct{}{}
	}

	if s.cache != nil {
		for hotelID := range touched {
			s.invalidateReads(ctx, hotelID)
		}
	}
	return stats, nil
}

// invalidateReads evicts the common read-cache variants for a hotel after
// its reviews changed. Keys with date filters are never cached, so TTL
// covers the rest.
func (s *IngestService) invalidateReads(ctx context.Context, hotelID int64) {
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("reviews:h%d:%d", hotelID, lim))
		_ = s.cache.Del(ctx, fmt.Sprintf("reviews:all:%d", lim))
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("quality:h%d", hotelID))
	_ = s.cache.Del(ctx, "quality:all")
}
