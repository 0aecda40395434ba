package common

import "time"

// Clock measures wall time between frames.
type Clock struct {
	now  func() time.Time
	last time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Tick returns the seconds elapsed since the previous Tick. The first call returns 0.
func (c *Clock) Tick() float64 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return dt
}
