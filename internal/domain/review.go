package domain

import "time"

// ReviewRecord is one normalized guest review as produced by the extractor.
// HotelReply == nil means "no management response yet"; such records are
// never eligible for scoring.
type ReviewRecord struct {
	CreatedAt    time.Time
	ReviewerName string
	Country      string
	Rating       *int // source scale 1-10; nil when the badge is unparseable
	Headline     string
	PositiveText string
	NegativeText string
	HotelReply   *string
	HotelName    string
	Lang         string // "he" | "en"
	SourceID     int

	// Extras the page sometimes carries.
	IsGenius      bool
	ReservationID *string
	ReplyModified *string
}

// Review is the persisted row. Natural key: (ReviewerName, CreatedAt, HotelID);
// re-running extraction over the same page updates, never duplicates.
type Review struct {
	ID           int64
	HotelID      int64
	CreatedAt    time.Time
	ReviewerName string
	Country      string
	Rating       *int
	Headline     string
	PositiveText string
	NegativeText string
	HotelReply   *string
	SourceID     int
	Lang         string
}

// ScoringCandidate is the projection the scoring sweep pulls: reviews with
// a hotel reply and no insight row yet.
type ScoringCandidate struct {
	ReviewID     int64
	Headline     string
	PositiveText string
	NegativeText string
	HotelReply   string
	Lang         string
}

// ReviewText is the guest-side text handed to the oracle.
func (c ScoringCandidate) ReviewText() string {
	out := ""
	for _, p := range []string{c.Headline, c.PositiveText, c.NegativeText} {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
