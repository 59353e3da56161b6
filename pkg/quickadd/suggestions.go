package quickadd

import "time"

var (
	morningSuggestions = []string{
		"Coffee with Sam at 10am",
		"Team standup tomorrow at 9:30am",
		"Gym in the morning for 45 min",
	}
	afternoonSuggestions = []string{
		"Lunch with Ana at 12:30pm",
		"Focus block at 3pm for 2 hours",
		"Call the dentist tomorrow at 2pm",
	}
	eveningSuggestions = []string{
		"Dinner at 7pm tomorrow",
		"Yoga this evening for 1 hour",
		"Laundry on Saturday morning",
	}
)

// Suggestions returns example inputs that fit the time of day of t.
func Suggestions(t time.Time) []string {
	var suggestions []string
	switch hour := t.Hour(); {
	case hour < 12:
		suggestions = morningSuggestions
	case hour < 17:
		suggestions = afternoonSuggestions
	default:
		suggestions = eveningSuggestions
	}
	return append([]string(nil), suggestions...)
}
