package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWeekDate_AcceptedFormats(t *testing.T) {
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	cases := []string{
		"2024-06-17",
		"06/17/2024",
		"17/06/2024",
		"Jun 17, 2024",
		"June 17, 2024",
		"17-06-2024",
		"06-17-2024",
	}

	for _, raw := range cases {
		got, ok := resolveWeekDate(raw, now)
		assert.True(t, ok, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}
}

func TestResolveWeekDate_BlankMeansToday(t *testing.T) {
	now := time.Date(2025, time.March, 3, 17, 45, 0, 0, time.UTC)

	got, ok := resolveWeekDate("  ", now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveWeekDate_SpreadsheetSerial(t *testing.T) {
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	got, ok := resolveWeekDate("45292", now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveWeekDate_GarbageFallsBackToToday(t *testing.T) {
	now := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

	got, ok := resolveWeekDate("next tuesday", now)

	assert.False(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveWeekDate_TimeComponentDropped(t *testing.T) {
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	got, ok := resolveWeekDate("2024-06-17 09:30:00", now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC), got)
}
