package importer

import (
	"strconv"
	"strings"
)

const (
	maxWeeklyHours    = 168
	fallbackHours     = 8
	missingHoursValue = 0
)

// resolveHours turns a raw hours cell into a bounded integer hour count. It
// never fails: blank means zero, anything unparseable means the fallback of 8
// with ok=false so the caller can record the adjustment. The result is always
// inside [0, 168].
func resolveHours(raw string) (hours int, ok bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return missingHoursValue, true
	}

	s = strings.ReplaceAll(s, "hours", "")
	s = strings.ReplaceAll(s, "hrs", "")
	s = strings.ReplaceAll(s, "h", "")
	s = strings.TrimSpace(s)

	value, parsed := parseHoursValue(s)
	if !parsed {
		return fallbackHours, false
	}
	return clampHours(value), true
}

func parseHoursValue(s string) (float64, bool) {
	if strings.Contains(s, "/") && !strings.Contains(s, ".") {
		parts := strings.Split(s, "/")
		if len(parts) != 2 {
			return 0, false
		}
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errA != nil || errB != nil || b == 0 {
			return 0, false
		}
		return a / b, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clampHours(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > maxWeeklyHours {
		v = maxWeeklyHours
	}
	return int(v)
}

func looksLikeNumber(v string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil
}
