package clock

import "time"

// FakeClock is a manually advanced Clock for tests that assert on
// stamped timestamps, such as application refreshes.
type FakeClock struct {
	now time.Time
}

// NewFakeClock starts the clock at t, normalized to UTC.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
