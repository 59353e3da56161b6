package highlight

import (
	"sort"
	"time"

	"github.com/dayplanner/dayplanner/internal/utils"
)

// Service computes streaks, aggregates and prompts over caller-supplied entries.
// It never modifies the entries it is given.
type Service struct {
	clock     utils.Clock
	random    utils.Random
	weekStart time.Weekday
}

func NewService(clock utils.Clock, random utils.Random, weekStart time.Weekday) *Service {
	return &Service{
		clock:     clock,
		random:    random,
		weekStart: weekStart,
	}
}

// In returns a copy of the service that normalises days in the given location.
func (s *Service) In(location *time.Location) *Service {
	return &Service{
		clock:     utils.InLocation(s.clock, location),
		random:    s.random,
		weekStart: s.weekStart,
	}
}

// dated is a highlighted entry with its calendar day number in the service location.
type dated struct {
	entry DayEntry
	day   int
}

func (s *Service) location() *time.Location {
	return s.clock.Now().Location()
}

// dayNumber counts calendar days since the Unix epoch, ignoring the time of day.
func (s *Service) dayNumber(t time.Time) int {
	year, month, day := t.In(s.location()).Date()
	return int(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func (s *Service) highlighted(entries []DayEntry) []dated {
	result := make([]dated, 0, len(entries))
	for _, entry := range entries {
		if entry.HasHighlight() {
			result = append(result, dated{entry: entry, day: s.dayNumber(entry.Date)})
		}
	}
	return result
}

func sortDescending(entries []dated) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].day > entries[j].day
	})
}

// CurrentStreak counts consecutive highlighted days ending at the most recent highlight.
// The streak is broken (0) when that highlight is older than yesterday.
func (s *Service) CurrentStreak(entries []DayEntry) int {
	days := s.highlighted(entries)
	if len(days) == 0 {
		return 0
	}
	sortDescending(days)

	mostRecent := days[0].day
	if s.dayNumber(s.clock.Now())-mostRecent > 1 {
		return 0
	}

	streak := 1
	expected := mostRecent - 1
	for _, d := range days[1:] {
		if d.day != expected {
			break
		}
		streak++
		expected--
	}
	return streak
}

// LongestStreak returns the longest run of consecutive highlighted days in the history.
func (s *Service) LongestStreak(entries []DayEntry) int {
	days := s.highlighted(entries)
	if len(days) == 0 {
		return 0
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].day < days[j].day
	})

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].day-days[i-1].day == 1 {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}
	return longest
}

func (s *Service) TotalHighlightDays(entries []DayEntry) int {
	return len(s.highlighted(entries))
}

// HighlightsForMonth returns highlighted entries in the calendar month of date, newest first.
func (s *Service) HighlightsForMonth(entries []DayEntry, date time.Time) []DayEntry {
	year, month, _ := date.In(s.location()).Date()
	return s.filterHighlights(entries, func(t time.Time) bool {
		y, m, _ := t.Date()
		return y == year && m == month
	})
}

// HighlightsForWeek returns highlighted entries in the week of date, newest first.
func (s *Service) HighlightsForWeek(entries []DayEntry, date time.Time) []DayEntry {
	week := WeekNumberFromDate(date.In(s.location()), s.weekStart)
	return s.filterHighlights(entries, func(t time.Time) bool {
		return WeekNumberFromDate(t, s.weekStart).Equal(week)
	})
}

// RecentHighlights returns up to count highlighted entries, newest first.
func (s *Service) RecentHighlights(entries []DayEntry, count int) []DayEntry {
	if count <= 0 {
		return []DayEntry{}
	}
	recent := s.filterHighlights(entries, func(time.Time) bool { return true })
	if len(recent) > count {
		recent = recent[:count]
	}
	return recent
}

func (s *Service) filterHighlights(entries []DayEntry, keep func(localDate time.Time) bool) []DayEntry {
	days := s.highlighted(entries)
	sortDescending(days)

	result := make([]DayEntry, 0, len(days))
	for _, d := range days {
		if keep(utils.StartOfDay(d.entry.Date.In(s.location()))) {
			result = append(result, d.entry)
		}
	}
	return result
}

// CalculateStats aggregates streaks and counts as of now.
func (s *Service) CalculateStats(entries []DayEntry) Stats {
	now := s.clock.Now()
	return Stats{
		CurrentStreak:  s.CurrentStreak(entries),
		LongestStreak:  s.LongestStreak(entries),
		TotalDays:      s.TotalHighlightDays(entries),
		ThisWeekCount:  len(s.HighlightsForWeek(entries, now)),
		ThisMonthCount: len(s.HighlightsForMonth(entries, now)),
	}
}
