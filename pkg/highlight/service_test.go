package highlight

import (
	"testing"
	"time"

	"github.com/dayplanner/dayplanner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

// Wednesday evening
var now = time.Date(2025, time.June, 4, 20, 0, 0, 0, location)

func setupServiceTest(t *testing.T, random *utils.MockRandom) (*Service, *utils.MockClock) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: now}
	if random == nil {
		random = &utils.MockRandom{}
	}
	return NewService(clock, random, time.Sunday), clock
}

func daysAgo(days int, text string) DayEntry {
	return DayEntry{
		Date:          time.Date(now.Year(), now.Month(), now.Day()-days, 12, 0, 0, 0, location),
		HighlightText: text,
	}
}

func TestService_CurrentStreak(t *testing.T) {
	testCases := []struct {
		name    string
		entries []DayEntry
		want    int
	}{
		{"no entries", nil, 0},
		{"today only", []DayEntry{daysAgo(0, "coffee")}, 1},
		{"three consecutive days ending today", []DayEntry{daysAgo(0, "a"), daysAgo(1, "b"), daysAgo(2, "c")}, 3},
		{"gap does not extend the streak", []DayEntry{daysAgo(0, "a"), daysAgo(1, "b"), daysAgo(2, "c"), daysAgo(4, "d")}, 3},
		{"streak ending yesterday is still live", []DayEntry{daysAgo(1, "a"), daysAgo(2, "b")}, 2},
		{"streak ending two days ago is broken", []DayEntry{daysAgo(2, "a"), daysAgo(3, "b"), daysAgo(4, "c")}, 0},
		{"blank highlights are ignored", []DayEntry{daysAgo(0, "a"), daysAgo(1, "   "), daysAgo(2, "c")}, 1},
		{"unsorted input", []DayEntry{daysAgo(2, "c"), daysAgo(0, "a"), daysAgo(1, "b")}, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := setupServiceTest(t, nil)
			assert.Equal(t, tc.want, service.CurrentStreak(tc.entries))
		})
	}
}

func TestService_CurrentStreak_IgnoresTimeOfDay(t *testing.T) {
	service, clock := setupServiceTest(t, nil)
	clock.SetNow(time.Date(2025, time.June, 4, 0, 5, 0, 0, location))

	entries := []DayEntry{
		{Date: time.Date(2025, time.June, 3, 23, 55, 0, 0, location), HighlightText: "late night"},
		{Date: time.Date(2025, time.June, 2, 0, 1, 0, 0, location), HighlightText: "early morning"},
	}
	assert.Equal(t, 2, service.CurrentStreak(entries))
}

func TestService_CurrentStreak_ExpiresAsDaysPass(t *testing.T) {
	service, clock := setupServiceTest(t, nil)
	entries := []DayEntry{daysAgo(0, "a"), daysAgo(1, "b"), daysAgo(2, "c")}
	require.Equal(t, 3, service.CurrentStreak(entries))

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 3, service.CurrentStreak(entries))

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, service.CurrentStreak(entries))
	assert.Equal(t, 3, service.LongestStreak(entries))
}

func TestService_LongestStreak(t *testing.T) {
	service, _ := setupServiceTest(t, nil)
	history := []DayEntry{
		daysAgo(10, "a"), daysAgo(9, "b"), daysAgo(8, "c"), daysAgo(7, "d"),
		daysAgo(2, "e"),
	}

	assert.Equal(t, 4, service.LongestStreak(history))
	assert.Equal(t, 0, service.CurrentStreak(history))
	assert.Equal(t, 0, service.LongestStreak(nil))
	assert.Equal(t, 1, service.LongestStreak([]DayEntry{daysAgo(3, "x")}))
}

func TestService_Aggregates(t *testing.T) {
	service, _ := setupServiceTest(t, nil)
	entries := []DayEntry{
		daysAgo(4, "Saturday in May"), // May 31
		daysAgo(3, "Sunday"),          // June 1
		daysAgo(2, ""),                // June 2, no highlight
		daysAgo(1, "Tuesday"),         // June 3
	}

	assert.Equal(t, 3, service.TotalHighlightDays(entries))

	month := service.HighlightsForMonth(entries, now)
	require.Len(t, month, 2)
	assert.Equal(t, "Tuesday", month[0].HighlightText)
	assert.Equal(t, "Sunday", month[1].HighlightText)

	week := service.HighlightsForWeek(entries, now)
	require.Len(t, week, 2)
	assert.Equal(t, "Tuesday", week[0].HighlightText)

	mondayWeeks := NewService(&utils.MockClock{FixedNow: now}, &utils.MockRandom{}, time.Monday)
	assert.Len(t, mondayWeeks.HighlightsForWeek(entries, now), 1)

	recent := service.RecentHighlights(entries, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "Tuesday", recent[0].HighlightText)
	assert.Equal(t, "Sunday", recent[1].HighlightText)
	assert.Empty(t, service.RecentHighlights(entries, 0))
	assert.Len(t, service.RecentHighlights(entries, 10), 3)
}

func TestService_CalculateStats(t *testing.T) {
	service, _ := setupServiceTest(t, nil)
	entries := []DayEntry{
		daysAgo(0, "a"), daysAgo(1, "b"),
		daysAgo(20, "c"), daysAgo(21, "d"), daysAgo(22, "e"),
	}

	stats := service.CalculateStats(entries)
	assert.Equal(t, Stats{
		CurrentStreak:  2,
		LongestStreak:  3,
		TotalDays:      5,
		ThisWeekCount:  2,
		ThisMonthCount: 2,
	}, stats)

	assert.Equal(t, Stats{}, service.CalculateStats(nil))
}

func TestService_In(t *testing.T) {
	service, clock := setupServiceTest(t, nil)
	// 23:30 in Warsaw is already the next day in Tokyo
	clock.SetNow(time.Date(2025, time.June, 4, 23, 30, 0, 0, location))
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	entries := []DayEntry{{Date: time.Date(2025, time.June, 4, 12, 0, 0, 0, location), HighlightText: "lunch"}}
	assert.Equal(t, 1, service.CurrentStreak(entries))
	assert.Equal(t, 1, service.In(tokyo).CurrentStreak(entries))
	assert.Equal(t, 1, service.In(tokyo).TotalHighlightDays(entries))
}

func TestWeekNumberFromDate(t *testing.T) {
	wednesday := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		name      string
		date      time.Time
		weekStart time.Weekday
		want      WeekNumber
	}{
		{"sunday start uses the preceding sunday", wednesday, time.Sunday, WeekNumber{Year: 2025, Week: 22}},
		{"monday start is the ISO week", wednesday, time.Monday, WeekNumber{Year: 2025, Week: 23}},
		{"invalid start day falls back to sunday", wednesday, time.Weekday(9), WeekNumber{Year: 2025, Week: 22}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekNumberFromDate(tc.date, tc.weekStart))
		})
	}
	assert.Equal(t, "2025-W03", WeekNumber{Year: 2025, Week: 3}.String())
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	day, err = ParseWeekday("sun")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}
