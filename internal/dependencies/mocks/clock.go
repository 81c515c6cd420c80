package mocks

import (
	"sync"
	"time"

	"github.com/sammollineaux/three-trios/internal/dependencies/clock"
)

// MockClock is a controllable Clock. With a non-zero step every call to Now
// returns a time one step later than the previous call, which gives each
// turn of a scripted game a distinct timestamp.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// NewSteppingMockClock creates a MockClock that starts at t and moves
// forward by step after every reading
func NewSteppingMockClock(t time.Time, step time.Duration) *MockClock {
	return &MockClock{current: t, step: step}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Peek returns the time the next Now call will report without advancing
func (c *MockClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set moves the clock to t
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
