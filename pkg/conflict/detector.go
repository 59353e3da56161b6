package conflict

import (
	"sort"
	"time"

	"github.com/dayplanner/dayplanner/pkg/event"
	log "github.com/sirupsen/logrus"
)

const DefaultBuffer = 15 * time.Minute

// hardOverlapRatio is the share of the shorter event that must overlap for a hard conflict.
const hardOverlapRatio = 0.5

// Detector classifies collisions between a candidate event and existing events.
// It holds no state besides its buffer and is safe for concurrent use.
type Detector struct {
	Buffer time.Duration
}

func NewDetector(buffer time.Duration) Detector {
	if buffer < 0 {
		buffer = 0
	}
	return Detector{Buffer: buffer}
}

// WithBuffer returns a copy of the detector using the given buffer.
func (d Detector) WithBuffer(buffer time.Duration) Detector {
	return NewDetector(buffer)
}

// DetectConflicts returns the conflicts of candidate against existing, most severe first.
// Events with ID excludingID (when not empty) and flexible events are skipped.
func (d Detector) DetectConflicts(candidate event.Event, existing []event.Event, excludingID string) []Conflict {
	conflicts := make([]Conflict, 0)
	for _, e := range existing {
		if excludingID != "" && e.ID == excludingID {
			continue
		}
		if e.IsFlexible {
			continue
		}
		if severity, ok := d.classify(candidate, e); ok {
			conflicts = append(conflicts, Conflict{Event: e, Severity: severity})
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].Severity > conflicts[j].Severity
	})
	log.Tracef("Detected %d conflicts for candidate %q", len(conflicts), candidate.Title)
	return conflicts
}

func (d Detector) classify(candidate, existing event.Event) (Severity, bool) {
	if candidate.Overlaps(existing) {
		overlap := minTime(candidate.End, existing.End).Sub(maxTime(candidate.Start, existing.Start))
		shorter := min(candidate.Duration(), existing.Duration())
		if shorter <= 0 {
			// a zero-length event inside another one is fully covered
			return Hard, true
		}
		if float64(overlap)/float64(shorter) > hardOverlapRatio {
			return Hard, true
		}
		return Soft, true
	}

	gap := min(absDuration(candidate.Start.Sub(existing.End)), absDuration(existing.Start.Sub(candidate.End)))
	if gap > 0 && gap < d.Buffer {
		return Adjacent, true
	}
	return 0, false
}

func (d Detector) HasConflicts(candidate event.Event, existing []event.Event, excludingID string) bool {
	return len(d.DetectConflicts(candidate, existing, excludingID)) > 0
}

// MostSevereConflict returns the first conflict in severity order, if any.
func (d Detector) MostSevereConflict(candidate event.Event, existing []event.Event, excludingID string) (Conflict, bool) {
	conflicts := d.DetectConflicts(candidate, existing, excludingID)
	if len(conflicts) == 0 {
		return Conflict{}, false
	}
	return conflicts[0], true
}

// IsTimeSlotAvailable reports whether [start, end) can be booked without any conflict.
func (d Detector) IsTimeSlotAvailable(start, end time.Time, existing []event.Event) bool {
	candidate := event.Event{Start: start, End: end}
	return len(d.DetectConflicts(candidate, existing, "")) == 0
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
