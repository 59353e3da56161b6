package ics

import (
	"math"
	"sort"
	"time"

	"github.com/dayplanner/dayplanner/pkg/event"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

const (
	// maxOccurrencesPerEvent caps recurrence expansion for a single VEVENT.
	maxOccurrencesPerEvent = 500
	// maxScannedOccurrences bounds the walk from DTSTART up to the window.
	maxScannedOccurrences = 100_000
)

// expand turns parsed VEVENTs into events within the window. Overridden
// instances (RECURRENCE-ID) replace the occurrence they override.
func expand(parsed []vevent, window Window) []event.Event {
	overridden := make(map[string][]time.Time)
	for _, ve := range parsed {
		if ve.recurrence != nil {
			overridden[ve.uid] = append(overridden[ve.uid], *ve.recurrence)
		}
	}

	events := make([]event.Event, 0)
	for _, ve := range parsed {
		switch {
		case ve.recurrence != nil:
			if intersects(ve.start, ve.end, window) {
				events = append(events, ve.toEvent(occurrenceID(ve.uid, *ve.recurrence), ve.start, ve.end))
			}
		case ve.rrule != "":
			events = append(events, expandRecurring(ve, overridden[ve.uid], window)...)
		default:
			if intersects(ve.start, ve.end, window) {
				events = append(events, ve.toEvent(ve.uid, ve.start, ve.end))
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

func expandRecurring(ve vevent, overrides []time.Time, window Window) []event.Event {
	rule, err := rrule.StrToRRule(ve.rrule)
	if err != nil {
		log.Warnf("Skipping recurring event %s with invalid RRULE %q: %v", ve.uid, ve.rrule, err)
		return nil
	}
	rule.DTStart(ve.start)

	var set rrule.Set
	set.RRule(rule)
	for _, exDate := range ve.exDates {
		set.ExDate(exDate.In(ve.start.Location()))
	}
	for _, overridden := range overrides {
		set.ExDate(overridden.In(ve.start.Location()))
	}

	duration := ve.end.Sub(ve.start)
	days := max(1, int(math.Round(duration.Hours()/24)))
	events := make([]event.Event, 0)
	next := set.Iterator()
	scanned := 0
	for occurrence, ok := next(); ok; occurrence, ok = next() {
		if occurrence.After(window.End) {
			break
		}
		scanned++
		if scanned > maxScannedOccurrences {
			log.Warnf("Recurring event %s starts too long before the import window, skipping the rest", ve.uid)
			break
		}
		if len(events) == maxOccurrencesPerEvent {
			log.Warnf("Recurring event %s truncated at %d occurrences", ve.uid, maxOccurrencesPerEvent)
			break
		}
		start, end := occurrence, occurrence.Add(duration)
		if ve.allDay {
			start = civilMidnight(occurrence, occurrence.Location())
			end = start.AddDate(0, 0, days)
		}
		if !intersects(start, end, window) {
			continue
		}
		events = append(events, ve.toEvent(occurrenceID(ve.uid, start), start, end))
	}
	return events
}

func occurrenceID(uid string, start time.Time) string {
	return uid + "/" + start.Format(time.RFC3339)
}

// intersects reports whether [start, end] touches the window. Zero-length events
// at the window edge count.
func intersects(start, end time.Time, window Window) bool {
	return !end.Before(window.Start) && !start.After(window.End)
}
