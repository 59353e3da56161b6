package conflict

import (
	"time"

	"github.com/dayplanner/dayplanner/internal/utils"
	"github.com/dayplanner/dayplanner/pkg/event"
)

const (
	slotStepMinutes    = 15
	maxSuggestions     = 3
	DefaultStartHour   = 9
	DefaultEndHour     = 17
	DefaultSearchDays  = 7
	DefaultSearchStart = 8
	DefaultSearchEnd   = 20
)

// SlotSearch bounds a multi-day search for free time.
type SlotSearch struct {
	Days      int
	StartHour int
	EndHour   int
}

func DefaultSlotSearch() SlotSearch {
	return SlotSearch{
		Days:      DefaultSearchDays,
		StartHour: DefaultSearchStart,
		EndHour:   DefaultSearchEnd,
	}
}

// SuggestAlternativeTimeSlots returns up to three start times on day, between startHour
// (inclusive) and endHour (exclusive), at which an event of the given duration is free.
func (d Detector) SuggestAlternativeTimeSlots(duration time.Duration, day time.Time, existing []event.Event, startHour, endHour int) []time.Time {
	slots := make([]time.Time, 0, maxSuggestions)
	dayStart := utils.StartOfDay(day)

	for minute := startHour * 60; minute < endHour*60; minute += slotStepMinutes {
		start, ok := atMinuteOfDay(dayStart, minute)
		if ok && d.IsTimeSlotAvailable(start, start.Add(duration), existing) {
			slots = append(slots, start)
			if len(slots) == maxSuggestions {
				break
			}
		}
	}
	return slots
}

// FindNextAvailableSlot searches day by day, starting at from, for the first free slot.
// On the first day the scan starts at from's own time of day so it never proposes a slot in
// the past; later days start at search.StartHour. It returns false when the whole window
// is booked.
func (d Detector) FindNextAvailableSlot(duration time.Duration, from time.Time, existing []event.Event, search SlotSearch) (time.Time, bool) {
	firstDay := utils.StartOfDay(from)

	for dayOffset := 0; dayOffset < search.Days; dayOffset++ {
		searchDay := firstDay.AddDate(0, 0, dayOffset)

		startMinute := search.StartHour * 60
		if dayOffset == 0 {
			startMinute = minuteOfDayRoundedUp(from)
		}

		for minute := startMinute; minute < search.EndHour*60; minute += slotStepMinutes {
			start, ok := atMinuteOfDay(searchDay, minute)
			if ok && d.IsTimeSlotAvailable(start, start.Add(duration), existing) {
				return start, true
			}
		}
	}
	return time.Time{}, false
}

// atMinuteOfDay returns the wall clock time minute minutes after midnight of dayStart.
// It reports false when that wall time is skipped by a daylight saving change.
func atMinuteOfDay(dayStart time.Time, minute int) (time.Time, bool) {
	start := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, minute, 0, 0, dayStart.Location())
	return start, start.Day() == dayStart.Day() && start.Hour()*60+start.Minute() == minute
}

func minuteOfDayRoundedUp(t time.Time) int {
	minute := t.Hour()*60 + t.Minute()
	if t.Second() > 0 || t.Nanosecond() > 0 {
		minute++
	}
	return minute
}
