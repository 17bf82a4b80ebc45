package booking

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"hoteai/internal/domain"
)

// SourceBooking identifies the review platform this extractor targets.
const SourceBooking = 1

// SelectorSet lists the CSS selector candidates per field, primary first.
// Kept as data so markup drift is a config change, not a code change.
type SelectorSet struct {
	Block     string
	Name      []string
	Country   []string
	Rating    []string
	Headline  []string
	Body      []string
	Reply     []string
	Date      []string
	ReplyDate []string
}

func DefaultSelectors() SelectorSet {
	return SelectorSet{
		Block:    "li.review_list_new_item_block",
		Name:     []string{".bui-avatar-block__title"},
		Country:  []string{".bui-avatar-block__subtitle"},
		Rating:   []string{".bui-review-score__badge"},
		Headline: []string{".c-review-block__title"},
		Body: []string{
			".c-review__body",
			".review-content",
			"[data-testid='review-text']",
		},
		Reply: []string{
			".c-review-block__response__body",
			".c-review__response",
			".hp--review-response__body",
			".review-response__content",
			".bui-card__content--response",
			"[data-testid='review-response']",
			".review-block__response",
		},
		Date: []string{".c-review-block__date"},
		ReplyDate: []string{
			".c-review-block__response__date",
			".hp--review-response__date",
			".review-response__date",
		},
	}
}

// Extractor turns a raw review-listing page into normalized ReviewRecords.
// Pure given identical HTML and a fixed Now: repeated runs produce identical
// output, which the store's natural-key upsert relies on.
type Extractor struct {
	Selectors SelectorSet
	Split     SplitterConfig
	SourceID  int
	Now       func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{
		Selectors: DefaultSelectors(),
		Split:     DefaultSplitterConfig(),
		SourceID:  SourceBooking,
		Now:       time.Now,
	}
}

var pagenameRE = regexp.MustCompile(`pagename=([^;&]+)`)

// Extract parses the document and returns one record per review block, in
// page order. Zero blocks is not an error: it signals an empty page or a
// markup change, distinct from a transport failure at the caller.
func (e *Extractor) Extract(html, hotelNameHint string) ([]domain.ReviewRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	hotelName := strings.TrimSpace(hotelNameHint)
	if hotelName == "" {
		hotelName = hotelNameFromPagination(doc)
	}

	blocks := doc.Find(e.Selectors.Block)
	records := make([]domain.ReviewRecord, 0, blocks.Length())

	blocks.Each(func(_ int, block *goquery.Selection) {
		records = append(records, e.extractBlock(block, hotelName))
	})
	if len(records) == 0 {
		log.Debug().Str("selector", e.Selectors.Block).Msg("no review blocks found")
	}
	return records, nil
}

func (e *Extractor) extractBlock(block *goquery.Selection, hotelName string) domain.ReviewRecord {
	name := longestText(block, e.Selectors.Name)
	if name == "" {
		name = "Unknown"
	}

	rating := parseRating(longestText(block, e.Selectors.Rating))
	headline := longestText(block, e.Selectors.Headline)
	body := longestText(block, e.Selectors.Body)
	positive, negative := e.Split.Split(body, rating)

	// Responsive layouts render the same reply in multiple DOM copies;
	// the single longest candidate wins.
	var reply *string
	if r := longestText(block, e.Selectors.Reply); r != "" {
		reply = &r
	}

	lang := "en"
	if isHebrew(headline + " " + body) {
		lang = "he"
	}

	var reservationID *string
	if v, ok := block.Find("[data-reservation-id]").Attr("data-reservation-id"); ok && v != "" {
		reservationID = &v
	}
	var replyModified *string
	if v := longestText(block, e.Selectors.ReplyDate); v != "" {
		replyModified = &v
	}

	return domain.ReviewRecord{
		CreatedAt:     parseHebrewDate(longestText(block, e.Selectors.Date), e.Now().UTC()),
		ReviewerName:  name,
		Country:       longestText(block, e.Selectors.Country),
		Rating:        rating,
		Headline:      headline,
		PositiveText:  positive,
		NegativeText:  negative,
		HotelReply:    reply,
		HotelName:     hotelName,
		Lang:          lang,
		SourceID:      e.SourceID,
		IsGenius:      block.Find(".bui-badge--genius").Length() > 0,
		ReservationID: reservationID,
		ReplyModified: replyModified,
	}
}

// longestText probes the selector candidates over the block and returns the
// longest non-empty trimmed text among every match. Longer text is assumed
// more complete. Missing fields come back "".
func longestText(block *goquery.Selection, selectors []string) string {
	best := ""
	for _, sel := range selectors {
		block.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); len(t) > len(best) {
				best = t
			}
		})
	}
	return best
}

var numberRE = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// parseRating pulls the first number out of the badge text and rounds it to
// the nearest integer. Unparseable badges yield nil, never an error.
func parseRating(text string) *int {
	tok := numberRE.FindString(text)
	if tok == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
	if err != nil {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

// hotelNameFromPagination recovers the hotel name from the pagination
// link's pagename parameter (dashes stand in for spaces).
func hotelNameFromPagination(doc *goquery.Document) string {
	href, ok := doc.Find("a.pagenext").Attr("href")
	if !ok {
		return "Unknown"
	}
	m := pagenameRE.FindStringSubmatch(href)
	if m == nil {
		return "Unknown"
	}
	return strings.ReplaceAll(m[1], "-", " ")
}
