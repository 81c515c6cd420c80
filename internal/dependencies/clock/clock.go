package clock

import "time"

// Clock is the source of game timestamps
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC so stored timestamps compare
// equal regardless of the host's zone
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
