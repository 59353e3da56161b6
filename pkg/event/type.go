package event

import (
	"strings"
)

// Type is the category of an event.
type Type int

const (
	Other Type = iota
	Work
	Personal
	Social
	SoloDate
	Cleaning
	Admin
	DeepWork
	Health
)

var typeTags = map[Type]string{
	Other:    "other",
	Work:     "work",
	Personal: "personal",
	Social:   "social",
	SoloDate: "soloDate",
	Cleaning: "cleaning",
	Admin:    "admin",
	DeepWork: "deepWork",
	Health:   "health",
}

// Types lists every known category except Other.
var Types = []Type{Work, Personal, Social, SoloDate, Cleaning, Admin, DeepWork, Health}

func (t Type) String() string {
	if tag, ok := typeTags[t]; ok {
		return tag
	}
	return typeTags[Other]
}

// ParseType maps a tag such as "deepWork", "deep_work" or "Deep Work" onto a Type.
// Unknown tags map to Other.
func ParseType(tag string) Type {
	normalized := normalizeTag(tag)
	for t, known := range typeTags {
		if normalizeTag(known) == normalized {
			return t
		}
	}
	return Other
}

func normalizeTag(tag string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(tag)))
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	*t = ParseType(string(text))
	return nil
}
