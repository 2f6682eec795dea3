package rolecreds

import (
	"time"
)

// Clock is the clock interface we expect. Swap it out with WithClock to
// simulate the passage of time in tests.
type Clock interface {
	Now() time.Time
}

type defaultClock struct{}

func (c *defaultClock) Now() time.Time {
	return time.Now()
}
