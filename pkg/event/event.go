package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled calendar entry as supplied by the caller.
// End is expected to be after Start; the scheduling code does not enforce it.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Type        Type
	CustomType  string // user-defined template tag, kept when Type is Other
	IsFlexible  bool   // flexible events never block other events
	IsTentative bool
}

// New returns an event with a freshly generated ID.
func New(title string, start, end time.Time, eventType Type) Event {
	return Event{
		ID:    uuid.NewString(),
		Title: title,
		Start: start,
		End:   end,
		Type:  eventType,
	}
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether both events share any instant. Touching events do not overlap.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Before(other.End) && e.End.After(other.Start)
}

// HasEnded reports whether the event is over at the given time.
func (e Event) HasEnded(now time.Time) bool {
	return !e.End.After(now)
}

// TypeTag returns the tag the event was categorised with, preferring the custom tag.
func (e Event) TypeTag() string {
	if e.Type == Other && e.CustomType != "" {
		return e.CustomType
	}
	return e.Type.String()
}
