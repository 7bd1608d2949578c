package clock

import "time"

// Clock provides time operations that can be swapped out in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// New creates a new RealClock.
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock implements Clock with a fixed instant, for tests.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c *FixedClock) Now() time.Time {
	return c.Instant
}
