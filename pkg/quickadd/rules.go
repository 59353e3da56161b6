package quickadd

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dayplanner/dayplanner/pkg/event"
)

// clockTime is a time of day matched by a time rule.
type clockTime struct {
	hour   int
	minute int
}

// timeRule matches a time of day starting at tokens[i] and reports how many tokens it spans.
type timeRule struct {
	name       string
	confidence float64
	prefixes   []string
	match      func(tokens []*token, i int) (clockTime, int, bool)
}

// timeRules are tried in order; the first rule matching anywhere in the input wins.
var timeRules = []timeRule{
	{name: "h:mm am/pm", confidence: 0.4, prefixes: []string{"at"}, match: matchClockWithMeridiem},
	{name: "h am/pm", confidence: 0.4, prefixes: []string{"at"}, match: matchHourWithMeridiem},
	{name: "H:mm", confidence: 0.4, prefixes: []string{"at"}, match: matchClock24},
	{name: "time word", confidence: 0.3, prefixes: []string{"in the", "this", "at"}, match: matchTimeWord},
}

var timeWords = map[string]clockTime{
	"noon":      {12, 0},
	"midnight":  {0, 0},
	"morning":   {9, 0},
	"afternoon": {14, 0},
	"evening":   {18, 0},
	"night":     {20, 0},
	"tonight":   {20, 0},
}

func meridiem(s string) (string, bool) {
	s = strings.ReplaceAll(s, ".", "")
	if s == "am" || s == "pm" {
		return s, true
	}
	return "", false
}

func parseHourMinute(s string) (int, int, bool) {
	hourPart, minutePart, found := strings.Cut(s, ":")
	if !found || !isDigits(hourPart) || len(hourPart) > 2 || len(minutePart) != 2 || !isDigits(minutePart) {
		return 0, 0, false
	}
	hour, _ := strconv.Atoi(hourPart)
	minute, _ := strconv.Atoi(minutePart)
	if minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func to24Hour(hour int, suffix string) (int, bool) {
	if hour < 1 || hour > 12 {
		return 0, false
	}
	if suffix == "pm" && hour != 12 {
		return hour + 12, true
	}
	if suffix == "am" && hour == 12 {
		return 0, true
	}
	return hour, true
}

// splitMeridiem splits "7:30pm" into "7:30" and "pm". When the token carries no suffix
// the following free token is checked.
func splitMeridiem(tokens []*token, i int) (string, string, int, bool) {
	norm := tokens[i].norm
	for _, suffix := range []string{"am", "pm", "a.m", "p.m"} {
		if strings.HasSuffix(norm, suffix) && len(norm) > len(suffix) {
			m, _ := meridiem(suffix)
			return strings.TrimSuffix(norm, suffix), m, 1, true
		}
	}
	if free(tokens, i+1) {
		if m, ok := meridiem(tokens[i+1].norm); ok {
			return norm, m, 2, true
		}
	}
	return "", "", 0, false
}

func matchClockWithMeridiem(tokens []*token, i int) (clockTime, int, bool) {
	value, suffix, width, ok := splitMeridiem(tokens, i)
	if !ok {
		return clockTime{}, 0, false
	}
	hour, minute, ok := parseHourMinute(value)
	if !ok {
		return clockTime{}, 0, false
	}
	hour, ok = to24Hour(hour, suffix)
	if !ok {
		return clockTime{}, 0, false
	}
	return clockTime{hour, minute}, width, true
}

func matchHourWithMeridiem(tokens []*token, i int) (clockTime, int, bool) {
	value, suffix, width, ok := splitMeridiem(tokens, i)
	if !ok || !isDigits(value) || len(value) > 2 {
		return clockTime{}, 0, false
	}
	hour, _ := strconv.Atoi(value)
	hour, ok = to24Hour(hour, suffix)
	if !ok {
		return clockTime{}, 0, false
	}
	return clockTime{hour, 0}, width, true
}

func matchClock24(tokens []*token, i int) (clockTime, int, bool) {
	hour, minute, ok := parseHourMinute(tokens[i].norm)
	if !ok || hour > 23 {
		return clockTime{}, 0, false
	}
	return clockTime{hour, minute}, 1, true
}

func matchTimeWord(tokens []*token, i int) (clockTime, int, bool) {
	t, ok := timeWords[tokens[i].norm]
	return t, 1, ok
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// dayRule resolves a day keyword to a number of days after the reference date.
// Words in needsPrefix only count when one of the prefixes precedes them.
type dayRule struct {
	name        string
	prefixes    []string
	needsPrefix map[string]bool
	match       func(norm string, reference time.Time) (int, bool)
}

var dayRules = []dayRule{
	{name: "today", prefixes: nil, match: func(norm string, _ time.Time) (int, bool) {
		return 0, norm == "today"
	}},
	{name: "tomorrow", prefixes: nil, match: func(norm string, _ time.Time) (int, bool) {
		return 1, norm == "tomorrow"
	}},
	{
		name:        "weekday",
		prefixes:    []string{"on next", "next", "on"},
		needsPrefix: map[string]bool{"sun": true, "sat": true},
		match:       matchWeekday,
	},
}

// matchWeekday resolves to the next occurrence strictly after the reference date.
func matchWeekday(norm string, reference time.Time) (int, bool) {
	weekday, ok := weekdays[norm]
	if !ok {
		return 0, false
	}
	daysUntil := int(weekday - reference.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return daysUntil, true
}

var durationUnits = map[string]int{
	"h": 60, "hr": 60, "hrs": 60, "hour": 60, "hours": 60,
	"m": 1, "min": 1, "mins": 1, "minute": 1, "minutes": 1,
}

// maxDurationMinutes is the longest duration quick add accepts; longer ones fall back to the default.
const maxDurationMinutes = 7 * 24 * 60

var durationKeywords = map[string]int{
	"quick": 15,
	"short": 30,
	"long":  120,
}

// matchNumericDuration matches "90min", "2 hours" and similar, returning minutes.
// Amounts above maxDurationMinutes are reported as maxDurationMinutes+1.
func matchNumericDuration(tokens []*token, i int) (int, int, bool) {
	digits, unit := splitLeadingDigits(tokens[i].norm)
	if !isDigits(digits) {
		return 0, 0, false
	}
	amount, err := strconv.Atoi(digits)
	if err != nil {
		// only out of range errors remain once the token is all digits
		amount = math.MaxInt
	}
	width := 1
	if unit == "" {
		if !free(tokens, i+1) {
			return 0, 0, false
		}
		unit, width = tokens[i+1].norm, 2
	}
	multiplier, ok := durationUnits[unit]
	if !ok {
		return 0, 0, false
	}
	if amount > maxDurationMinutes/multiplier {
		return maxDurationMinutes + 1, width, true
	}
	return amount * multiplier, width, true
}

type typeKeywords struct {
	eventType event.Type
	keywords  []string
}

// typeTable is checked in order; the first category with a keyword in the input wins.
var typeTable = []typeKeywords{
	{event.Work, []string{"meeting", "sync", "standup", "stand-up", "1:1", "interview", "call with", "presentation", "review", "client"}},
	{event.Social, []string{"dinner", "lunch", "coffee", "drinks", "brunch", "party", "birthday", "hangout", "catch up", "friends"}},
	{event.Health, []string{"gym", "workout", "yoga", "jog", "running", "doctor", "dentist", "therapy", "swim", "walk"}},
	{event.Cleaning, []string{"clean", "tidy", "laundry", "vacuum", "organize", "dishes", "declutter"}},
	{event.Admin, []string{"admin", "bills", "errands", "taxes", "paperwork", "inbox"}},
	{event.DeepWork, []string{"focus", "deep work", "writing", "study", "coding"}},
	{event.SoloDate, []string{"solo", "me time", "spa", "self-care", "alone"}},
}

var prepositions = map[string]bool{
	"at": true, "in": true, "on": true, "for": true, "by": true,
	"from": true, "to": true, "with": true, "@": true,
}

var locationStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "your": true,
}

// isDayWord reports whether norm names a day, so location capture stops before it.
func isDayWord(norm string) bool {
	if _, ok := weekdays[norm]; ok {
		return true
	}
	switch norm {
	case "today", "tomorrow", "tonight", "next", "this":
		return true
	}
	return false
}
