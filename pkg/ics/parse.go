package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dayplanner/dayplanner/pkg/event"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyCalendar = errors.New("empty calendar body")
	ErrInvalidWindow = errors.New("window end is before window start")
)

// Window is the time range events are imported for. All-day events are placed
// in the location of Start.
type Window struct {
	Start time.Time
	End   time.Time
}

// vevent is a VEVENT reduced to the fields the planner cares about.
type vevent struct {
	uid         string
	summary     string
	location    string
	category    string
	start       time.Time
	end         time.Time
	allDay      bool
	transparent bool
	tentative   bool
	rrule       string
	exDates     []time.Time
	recurrence  *time.Time
}

// ParseEvents reads an iCalendar payload and returns the events that intersect the
// window, with recurring events expanded into one event per occurrence.
func ParseEvents(body []byte, window Window) ([]event.Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyCalendar
	}
	if window.End.Before(window.Start) {
		return nil, ErrInvalidWindow
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	parsed := make([]vevent, 0)
	for _, component := range cal.Events() {
		ve, err := parseVEvent(component, window.Start.Location())
		if err != nil {
			log.Warnf("Skipping calendar event: %v", err)
			continue
		}
		parsed = append(parsed, ve)
	}

	events := expand(parsed, window)
	log.Debugf("Imported %d events from %d calendar entries", len(events), len(parsed))
	return events, nil
}

func parseVEvent(ve *ical.VEvent, location *time.Location) (vevent, error) {
	var out vevent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		out.uid = p.Value
	} else {
		out.uid = uuid.NewString()
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		first, _, _ := strings.Cut(p.Value, ",")
		out.category = strings.TrimSpace(first)
	}
	if p := ve.GetProperty(ical.ComponentPropertyTransp); p != nil {
		out.transparent = strings.EqualFold(strings.TrimSpace(p.Value), "TRANSPARENT")
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		out.tentative = strings.EqualFold(strings.TrimSpace(p.Value), "TENTATIVE")
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("event %s has no start", out.uid)
	}
	out.allDay = isDateValue(dtStart)

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("event %s has an invalid start: %w", out.uid, err)
	}
	switch {
	case out.allDay:
		start = civilMidnight(start, location)
	case isFloating(dtStart):
		start = wallClock(start, location)
	}
	out.start = start

	end, err := ve.GetEndAt()
	switch {
	case err != nil && out.allDay:
		out.end = out.start.AddDate(0, 0, 1)
	case err != nil:
		out.end = out.start
	case out.allDay:
		out.end = civilMidnight(end, location)
	case isFloating(ve.GetProperty(ical.ComponentPropertyDtEnd)):
		out.end = wallClock(end, location)
	default:
		out.end = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rrule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		exLocation := propertyLocation(p, out.start.Location())
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, exLocation); err == nil {
				out.exDates = append(out.exDates, t)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRecurrenceId); p != nil {
		if t, err := parseICSTime(p.Value, propertyLocation(p, out.start.Location())); err == nil {
			out.recurrence = &t
		}
	}

	return out, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if values, ok := p.ICalParameters["VALUE"]; ok && len(values) > 0 && strings.EqualFold(values[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// isFloating reports whether a DATE-TIME value carries neither a TZID nor a UTC marker.
func isFloating(p *ical.IANAProperty) bool {
	_, hasZone := p.ICalParameters["TZID"]
	return !hasZone && !strings.HasSuffix(p.Value, "Z")
}

// propertyLocation resolves the TZID parameter of p, falling back to fallback.
func propertyLocation(p *ical.IANAProperty, fallback *time.Location) *time.Location {
	if ids, ok := p.ICalParameters["TZID"]; ok && len(ids) > 0 {
		if location, err := time.LoadLocation(ids[0]); err == nil {
			return location
		}
	}
	return fallback
}

func civilMidnight(t time.Time, location *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// wallClock keeps the clock reading of t and moves it to location.
func wallClock(t time.Time, location *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), 0, location)
}

// parseICSTime parses DATE and DATE-TIME values, in UTC when the value ends in Z.
func parseICSTime(value string, location *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(value, "Z"):
		return time.Parse("20060102T150405Z", value)
	case strings.Contains(value, "T"):
		return time.ParseInLocation("20060102T150405", value, location)
	default:
		return time.ParseInLocation("20060102", value, location)
	}
}

func (v vevent) toEvent(id string, start, end time.Time) event.Event {
	e := event.Event{
		ID:          id,
		Title:       v.summary,
		Start:       start,
		End:         end,
		Location:    v.location,
		IsFlexible:  v.transparent,
		IsTentative: v.tentative,
	}
	if v.category != "" {
		e.Type = event.ParseType(v.category)
		if e.Type == event.Other {
			e.CustomType = v.category
		}
	}
	return e
}
