package service

import "time"

// trialWindowTracker does the time arithmetic of the trial window.
// Pure functions over a start timestamp and the injected clock; no I/O.
type trialWindowTracker struct {
	window time.Duration
	clock  Clock
}

func newTrialWindowTracker(window time.Duration, clock Clock) trialWindowTracker {
	return trialWindowTracker{window: window, clock: clock}
}

// WindowStart resolves the effective start of the trial window. An unset
// start means the current moment opens a fresh window; the first trial
// login defines it.
func (t trialWindowTracker) WindowStart(start *time.Time) time.Time {
	if start == nil {
		return t.clock.Now()
	}
	return *start
}

// Expired reports whether the window has elapsed: now > start + window.
func (t trialWindowTracker) Expired(start time.Time) bool {
	return t.clock.Now().After(start.Add(t.window))
}

// RemainingHours returns ceil((start + window - now) / 1h), floored at zero.
func (t trialWindowTracker) RemainingHours(start time.Time) int {
	remaining := start.Add(t.window).Sub(t.clock.Now())
	if remaining <= 0 {
		return 0
	}

	hours := int(remaining / time.Hour)
	if remaining%time.Hour > 0 {
		hours++
	}
	return hours
}
