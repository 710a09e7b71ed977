package importer

import (
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet day-zero under the 1900 date system.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// genericLayouts covers the textual representations a permissive date parser
// is expected to accept, roughly most-common first.
var genericLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/06",
	"01-02-06",
	"1/2/06 15:04",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Monday, January 2, 2006",
}

// explicitLayouts is the fixed fallback list tried in order after everything
// else; the first successful layout wins.
var explicitLayouts = []string{
	"2006-01-02",  // YYYY-MM-DD
	"01/02/2006",  // MM/DD/YYYY
	"02/01/2006",  // DD/MM/YYYY
	"Jan 2, 2006", // Mon DD, YYYY
	"January 2, 2006",
	"02-01-2006", // DD-MM-YYYY
	"01-02-2006", // MM-DD-YYYY
}

// resolveWeekDate turns a raw week-marker cell into a calendar date. It never
// fails: unparseable input falls back to today's date with ok=false so the
// caller can record the adjustment.
func resolveWeekDate(raw string, now time.Time) (date time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return dateOnly(now), true
	}

	if d, parsed := parseDateText(raw); parsed {
		return d, true
	}

	// Bare numbers are day offsets from the spreadsheet epoch.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return dateOnly(serialEpoch.AddDate(0, 0, int(serial))), true
	}

	return dateOnly(now), false
}

// parseDateText tries the generic layouts then the explicit fallback list.
func parseDateText(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return dateOnly(d), true
		}
	}
	for _, layout := range explicitLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return dateOnly(d), true
		}
	}
	return time.Time{}, false
}

// dateOnly normalizes to midnight UTC so dates compare and hash as plain
// calendar days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
