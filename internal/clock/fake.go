package clock

import "time"

// FakeClock reports a manually controlled instant. Tests drive it from a
// single goroutine; Advance is not synchronized.
type FakeClock struct {
	current time.Time
}

// NewFakeClock starts the clock at the given instant, normalized to UTC.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
