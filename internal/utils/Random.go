package utils

import "math/rand"

// Random is the source of randomness for non-deterministic text selection.
type Random interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// Intn returns a number in [0, n). n must be positive.
	Intn(n int) int
}

// SystemRandom uses the goroutine-safe top-level math/rand source.
type SystemRandom struct{}

func (SystemRandom) Float64() float64 {
	return rand.Float64()
}

func (SystemRandom) Intn(n int) int {
	return rand.Intn(n)
}

// MockRandom replays the queued values, then falls back to 0.
type MockRandom struct {
	Floats []float64
	Ints   []int
}

func (m *MockRandom) Float64() float64 {
	if len(m.Floats) == 0 {
		return 0
	}
	f := m.Floats[0]
	m.Floats = m.Floats[1:]
	return f
}

func (m *MockRandom) Intn(n int) int {
	if len(m.Ints) == 0 {
		return 0
	}
	i := m.Ints[0]
	m.Ints = m.Ints[1:]
	if i >= n {
		return n - 1
	}
	return i
}
