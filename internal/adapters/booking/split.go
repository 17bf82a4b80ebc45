package booking

import (
	"regexp"
	"strings"
)

// SplitterConfig drives the positive/negative partition of a review body.
// The marker lists are hand-tuned data for Hebrew booking-page text; other
// languages supply their own lists.
type SplitterConfig struct {
	// NegativeMarkers are phrases that flag a sentence as a complaint.
	NegativeMarkers []string
	// NegativeWords are single words with the same effect.
	NegativeWords []string
	// Negation is the generic negation word; it only counts against a
	// sentence when the rating is at or below LowRatingMax.
	Negation     string
	LowRatingMax int
}

func DefaultSplitterConfig() SplitterConfig {
	return SplitterConfig{
		NegativeMarkers: []string{
			"אבל", "חבל ש", "לא נעים", "בעיה", "חסרון", "קשה", "רעש", "לא נוח", "מאכזב",
			"לא מספיק", "קטן מדי", "לא נקי", "לא מתאים", "חסר", "מוגבל", "ישן", "לא עבד",
			"לא הייתי מרוצה", "הרגשנו לא בנוח", "ציפיתי ליותר", "לא אהבנו", "לא מומלץ",
			"מאוד לא", "אכזבה", "גרוע", "לא טוב",
		},
		NegativeWords: []string{
			"חסר", "קטן", "ישן", "רע", "לא טוב", "צפוף", "מלוכלך", "שבור", "מוגבל",
			"בעייתי", "לא נעים", "לא מספק",
		},
		Negation:     "לא",
		LowRatingMax: 6,
	}
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// Split partitions a review body into positive and negative text.
// Sentences (period or newline boundaries) carrying a negative marker or
// word go negative; with a low rating the bare negation word counts too.
// If a low-rated body came out all-positive, the whole text is treated as
// a complaint.
func (c SplitterConfig) Split(text string, rating *int) (positive, negative string) {
	normalized := strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
	if normalized == "" {
		return "", ""
	}

	lowRating := rating != nil && *rating <= c.LowRatingMax

	var pos, neg []string
	for _, raw := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '.' || r == '\n'
	}) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		if c.isNegative(sentence, lowRating) {
			neg = append(neg, sentence)
		} else {
			pos = append(pos, sentence)
		}
	}

	// Low rating with nothing flagged negative: the entire text is a
	// complaint even absent markers.
	if lowRating && len(pos) > 0 && len(neg) == 0 {
		neg, pos = pos, nil
	}

	return strings.TrimSpace(strings.Join(pos, ". ")), strings.TrimSpace(strings.Join(neg, ". "))
}

func (c SplitterConfig) isNegative(sentence string, lowRating bool) bool {
	for _, marker := range c.NegativeMarkers {
		if strings.Contains(sentence, marker) {
			return true
		}
	}
	for _, word := range c.NegativeWords {
		if strings.Contains(sentence, word) {
			return true
		}
	}
	return lowRating && c.Negation != "" && strings.Contains(sentence, c.Negation)
}
