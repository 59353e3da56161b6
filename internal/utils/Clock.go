package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func (s SystemClock) Now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

type locatedClock struct {
	clock    Clock
	location *time.Location
}

func (c locatedClock) Now() time.Time {
	return c.clock.Now().In(c.location)
}

// InLocation returns a clock reporting the time of clock in the given location.
func InLocation(clock Clock, location *time.Location) Clock {
	if location == nil {
		return clock
	}
	return locatedClock{clock: clock, location: location}
}
