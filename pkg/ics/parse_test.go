package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/dayplanner/dayplanner/pkg/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

var window = Window{
	Start: time.Date(2025, time.June, 2, 0, 0, 0, 0, location),
	End:   time.Date(2025, time.June, 9, 0, 0, 0, 0, location),
}

const calendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//dayplanner//test//EN
BEGIN:VEVENT
UID:standup@example.com
DTSTART;TZID=Europe/Warsaw:20250602T093000
DTEND;TZID=Europe/Warsaw:20250602T094500
RRULE:FREQ=DAILY;COUNT=10
EXDATE;TZID=Europe/Warsaw:20250604T093000
SUMMARY:Standup
CATEGORIES:WORK,MEETINGS
END:VEVENT
BEGIN:VEVENT
UID:standup@example.com
RECURRENCE-ID;TZID=Europe/Warsaw:20250605T093000
DTSTART;TZID=Europe/Warsaw:20250605T110000
DTEND;TZID=Europe/Warsaw:20250605T111500
SUMMARY:Standup (moved)
END:VEVENT
BEGIN:VEVENT
UID:lunch@example.com
DTSTART:20250603T100000Z
DTEND:20250603T110000Z
SUMMARY:Lunch\, with Ola
LOCATION:Bistro
TRANSP:TRANSPARENT
STATUS:TENTATIVE
CATEGORIES:social
END:VEVENT
BEGIN:VEVENT
UID:trip@example.com
DTSTART;VALUE=DATE:20250607
DTEND;VALUE=DATE:20250609
SUMMARY:Weekend trip
CATEGORIES:Travel
END:VEVENT
BEGIN:VEVENT
DTSTART:20250606T180000
DTEND:20250606T190000
SUMMARY:Floating yoga
END:VEVENT
BEGIN:VEVENT
UID:old@example.com
DTSTART:20250501T100000Z
DTEND:20250501T110000Z
SUMMARY:Outside window
END:VEVENT
END:VCALENDAR
`

func warsaw(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, location)
}

func TestParseEvents(t *testing.T) {
	events, err := ParseEvents([]byte(calendar), window)
	require.NoError(t, err)

	titles := make([]string, 0, len(events))
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{
		"Standup",
		"Standup",
		"Lunch, with Ola",
		"Standup (moved)",
		"Standup",
		"Floating yoga",
		"Weekend trip",
		"Standup",
		"Standup",
	}, titles)

	t.Run("recurring occurrences", func(t *testing.T) {
		first := events[0]
		assert.Equal(t, "standup@example.com/2025-06-02T09:30:00+02:00", first.ID)
		assert.True(t, warsaw(2, 9, 30).Equal(first.Start))
		assert.Equal(t, 15*time.Minute, first.Duration())
		assert.Equal(t, event.Work, first.Type)

		for _, e := range events {
			assert.False(t, e.Start.Equal(warsaw(4, 9, 30)), "excluded date is skipped")
		}
	})

	t.Run("overridden occurrence", func(t *testing.T) {
		moved := events[3]
		assert.Equal(t, "standup@example.com/2025-06-05T09:30:00+02:00", moved.ID)
		assert.True(t, warsaw(5, 11, 0).Equal(moved.Start))
		assert.True(t, warsaw(5, 11, 15).Equal(moved.End))
	})

	t.Run("transparent tentative event", func(t *testing.T) {
		lunch := events[2]
		assert.Equal(t, "lunch@example.com", lunch.ID)
		assert.True(t, warsaw(3, 12, 0).Equal(lunch.Start))
		assert.Equal(t, "Bistro", lunch.Location)
		assert.Equal(t, event.Social, lunch.Type)
		assert.True(t, lunch.IsFlexible)
		assert.True(t, lunch.IsTentative)
	})

	t.Run("floating time without UID", func(t *testing.T) {
		yoga := events[5]
		assert.NoError(t, uuid.Validate(yoga.ID))
		assert.Equal(t, warsaw(6, 18, 0), yoga.Start)
	})

	t.Run("all day event keeps unknown category", func(t *testing.T) {
		trip := events[6]
		assert.Equal(t, warsaw(7, 0, 0), trip.Start)
		assert.Equal(t, warsaw(9, 0, 0), trip.End)
		assert.Equal(t, event.Other, trip.Type)
		assert.Equal(t, "Travel", trip.CustomType)
	})
}

func TestParseEvents_Errors(t *testing.T) {
	_, err := ParseEvents(nil, window)
	assert.ErrorIs(t, err, ErrEmptyCalendar)

	_, err = ParseEvents([]byte("  \n"), window)
	assert.ErrorIs(t, err, ErrEmptyCalendar)

	_, err = ParseEvents([]byte(calendar), Window{Start: window.End, End: window.Start})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = ParseEvents([]byte("BEGIN:VEVENT\nEND:VEVENT\n"), window)
	assert.Error(t, err)
}

func TestParseEvents_OccurrenceCap(t *testing.T) {
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//dayplanner//test//EN",
		"BEGIN:VEVENT",
		"UID:ping@example.com",
		"DTSTART:20250602T000000Z",
		"DTEND:20250602T000100Z",
		"RRULE:FREQ=MINUTELY",
		"SUMMARY:Ping",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	events, err := ParseEvents([]byte(body), window)
	require.NoError(t, err)
	assert.Len(t, events, maxOccurrencesPerEvent)
}

func TestParseEvents_InvalidRRuleIsSkipped(t *testing.T) {
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//dayplanner//test//EN",
		"BEGIN:VEVENT",
		"UID:broken@example.com",
		"DTSTART:20250603T080000Z",
		"DTEND:20250603T090000Z",
		"RRULE:FREQ=SOMETIMES",
		"SUMMARY:Broken",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:fine@example.com",
		"DTSTART:20250603T100000Z",
		"SUMMARY:Reminder",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	events, err := ParseEvents([]byte(body), window)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Reminder", events[0].Title)
	assert.Equal(t, time.Duration(0), events[0].Duration())
}
