package service

import "time"

// TimeProvider abstracts waiting so the stop poll can be driven
// deterministically in tests.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// RealTimeProvider implements TimeProvider using the system clock.
type RealTimeProvider struct{}

// Now returns the current system time.
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// After waits using the standard library.
func (RealTimeProvider) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
