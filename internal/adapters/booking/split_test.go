package booking

import (
	"testing"
)

func intp(n int) *int { return &n }

func TestSplit_NegativeMarkerWins(t *testing.T) {
	cfg := DefaultSplitterConfig()

	// "אבל" flags the second sentence regardless of rating.
	pos, neg := cfg.Split("הצוות היה נחמד. אבל היה רעש בלילה.", intp(9))
	if pos != "הצוות היה נחמד" {
		t.Fatalf("positive = %q", pos)
	}
	if neg != "אבל היה רעש בלילה" {
		t.Fatalf("negative = %q", neg)
	}
}

func TestSplit_LowRatingReclassifiesAll(t *testing.T) {
	cfg := DefaultSplitterConfig()

	// No negative markers at all, but rating 4: the whole text is a complaint.
	pos, neg := cfg.Split("Great pool. Friendly staff.", intp(4))
	if pos != "" {
		t.Fatalf("expected empty positive, got %q", pos)
	}
	if neg != "Great pool. Friendly staff" {
		t.Fatalf("negative = %q", neg)
	}
}

func TestSplit_HighRatingStaysPositive(t *testing.T) {
	cfg := DefaultSplitterConfig()

	pos, neg := cfg.Split("Great pool. Friendly staff.", intp(9))
	if pos != "Great pool. Friendly staff" || neg != "" {
		t.Fatalf("pos=%q neg=%q", pos, neg)
	}
}

func TestSplit_NegationCountsOnlyWithLowRating(t *testing.T) {
	cfg := DefaultSplitterConfig()
	text := "המיקום מצוין. לא אהבתי את הארוחה."

	// High rating: the bare negation word does not flag the sentence.
	if _, neg := cfg.Split(text, intp(8)); neg != "" {
		t.Fatalf("high rating: negative = %q", neg)
	}

	// Low rating: it does.
	if _, neg := cfg.Split(text, intp(5)); neg != "לא אהבתי את הארוחה" {
		t.Fatalf("low rating: negative = %q", neg)
	}
}

func TestSplit_NilRating(t *testing.T) {
	cfg := DefaultSplitterConfig()

	pos, neg := cfg.Split("Great pool. Friendly staff.", nil)
	if pos == "" || neg != "" {
		t.Fatalf("nil rating must not trigger the low-rating rule: pos=%q neg=%q", pos, neg)
	}
}

func TestSplit_NormalizesWhitespaceAndNewlines(t *testing.T) {
	cfg := DefaultSplitterConfig()

	pos, neg := cfg.Split("  Great   pool \n Friendly    staff ", intp(10))
	if pos != "Great pool Friendly staff" || neg != "" {
		t.Fatalf("pos=%q neg=%q", pos, neg)
	}
}

func TestSplit_Empty(t *testing.T) {
	cfg := DefaultSplitterConfig()
	if pos, neg := cfg.Split("   ", intp(3)); pos != "" || neg != "" {
		t.Fatalf("pos=%q neg=%q", pos, neg)
	}
}
