package highlight

import (
	"strings"
	"time"

	"github.com/dayplanner/dayplanner/pkg/event"
)

// DayEntry is the journal record of a single day.
type DayEntry struct {
	Date          time.Time
	HighlightText string
	MoodEmoji     string
}

// HasHighlight reports whether the entry carries a non-blank highlight.
func (e DayEntry) HasHighlight() bool {
	return strings.TrimSpace(e.HighlightText) != ""
}

type Stats struct {
	CurrentStreak  int
	LongestStreak  int
	TotalDays      int
	ThisWeekCount  int
	ThisMonthCount int
}

type PromptKind string

const (
	KindEvent       PromptKind = "event"
	KindMilestone   PromptKind = "milestone"
	KindWeekday     PromptKind = "weekday"
	KindWeekly      PromptKind = "weekly"
	KindDiscovery   PromptKind = "discovery"
	KindEncouraging PromptKind = "encouraging"
)

// Prompt is a suggestion shown to the user when writing a highlight.
type Prompt struct {
	Text     string
	Kind     PromptKind
	Category string      // weekday theme or milestone, empty for other kinds
	Event    *event.Event // the event a KindEvent prompt refers to
}
