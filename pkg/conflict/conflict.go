package conflict

import (
	"fmt"
	"strings"

	"github.com/dayplanner/dayplanner/pkg/event"
)

// Severity of a collision between a candidate and an existing event.
// Higher values are more severe.
type Severity int

const (
	Adjacent Severity = iota + 1
	Soft
	Hard
)

func (s Severity) String() string {
	switch s {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Adjacent:
		return "adjacent"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "hard":
		*s = Hard
	case "soft":
		*s = Soft
	case "adjacent":
		*s = Adjacent
	default:
		return fmt.Errorf("unknown conflict severity: %q", string(text))
	}
	return nil
}

// Conflict pairs an existing event with how badly the candidate collides with it.
type Conflict struct {
	Event    event.Event
	Severity Severity
}
