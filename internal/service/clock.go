package service

import "time"

// Clock abstracts "now" so trial-window arithmetic can be fast-forwarded
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a [Clock] backed by [time.Now].
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
