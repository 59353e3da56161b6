package highlight

import (
	"fmt"
	"strings"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

// WeekNumberFromDate returns the ISO week of the first day of the week containing date,
// where weeks begin on weekStartDay. Dates of the same week always share a WeekNumber.
func WeekNumberFromDate(date time.Time, weekStartDay time.Weekday) WeekNumber {
	if weekStartDay < time.Sunday || weekStartDay > time.Saturday {
		weekStartDay = time.Sunday
	}

	delta := (int(date.Weekday()) - int(weekStartDay) + 7) % 7
	startOfWeek := date.AddDate(0, 0, -delta)

	year, week := startOfWeek.ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// ParseWeekday accepts full or three letter English weekday names.
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if normalized == full || normalized == full[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", name)
}

func (w WeekNumber) Equal(other WeekNumber) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// String returns the ISO 8601 week format e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
