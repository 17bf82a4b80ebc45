package booking

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var hebrewMonths = map[string]time.Month{
	"ינואר":   time.January,
	"פברואר":  time.February,
	"מרץ":     time.March,
	"אפריל":   time.April,
	"מאי":     time.May,
	"יוני":    time.June,
	"יולי":    time.July,
	"אוגוסט":  time.August,
	"ספטמבר":  time.September,
	"אוקטובר": time.October,
	"נובמבר":  time.November,
	"דצמבר":   time.December,
}

var hebrewDateRE = regexp.MustCompile(`(\d{1,2})\s+([א-ת]+)\s+(\d{4})`)

// parseHebrewDate finds a day-month-year pattern in the block's date text
// and normalizes it to UTC midnight. The month name usually carries the
// elided preposition ("באוגוסט"); it is stripped before the lookup. Any
// failure falls back to fallback, never an error.
func parseHebrewDate(text string, fallback time.Time) time.Time {
	m := hebrewDateRE.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return fallback
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return fallback
	}

	name := m[2]
	month, ok := hebrewMonths[name]
	if !ok {
		if trimmed := strings.TrimPrefix(name, "ב"); trimmed != name {
			month, ok = hebrewMonths[trimmed]
		}
	}
	if !ok {
		return fallback
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// isHebrew reports whether the text contains any character from the Hebrew
// Unicode block.
func isHebrew(text string) bool {
	for _, r := range text {
		if r >= 0x0590 && r <= 0x05FF {
			return true
		}
	}
	return false
}
