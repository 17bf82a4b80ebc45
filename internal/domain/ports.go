package domain

import (
	"context"
	"time"
)

type ReviewRepository interface {
	// Write paths
	FindOrCreateHotel(ctx context.Context, name, location string, chainID int64) (int64, error)
	UpsertReview(ctx context.Context, rec ReviewRecord, hotelID int64) (int64, error)
	UpsertInsight(ctx context.Context, ins Insight) error

	// Read paths
	ListUnscored(ctx context.Context) ([]ScoringCandidate, error)
	GetCandidate(ctx context.Context, reviewID int64) (ScoringCandidate, error)
	ListReviews(ctx context.Context, q ReviewsQuery) ([]ReviewView, error)
	QualityOverTime(ctx context.Context, q ReviewsQuery) ([]QualityPoint, error)
}

// Extractor parses a raw HTML document into normalized review records.
type Extractor interface {
	Extract(html, hotelNameHint string) ([]ReviewRecord, error)
}

// Oracle judges one hotel reply against the rubric.
type Oracle interface {
	Judge(ctx context.Context, c ScoringCandidate) (Rubric, error)
}

// PageFetcher downloads a review-listing page and returns its HTML.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type ReviewsQuery struct {
	HotelID *int64
	ChainID *int64
	From    *time.Time
	To      *time.Time
	Limit   int
}

type ReviewView struct {
	ReviewID     int64      `json:"review_id"`
	HotelID      int64      `json:"hotel_id"`
	HotelName    string     `json:"hotel_name"`
	ChainName    string     `json:"hotel_chain"`
	SourceID     int        `json:"source_id"`
	CreatedAt    time.Time  `json:"created_at"`
	ReviewerName string     `json:"reviewer_name"`
	Country      string     `json:"reviewer_country"`
	Rating       *int       `json:"rating"`
	ReviewText   string     `json:"review_text"`
	HotelReply   *string    `json:"hotel_response"`
	Lang         string     `json:"review_lang"`
	Score        *float64   `json:"calculate_score"`
}

type QualityPoint struct {
	Date       string  `json:"review_date"` // yyyy-mm-dd bucket
	AvgQuality float64 `json:"avg_quality"`
}
