package clock

import "time"

// Clock abstracts the current time so collection windows and credential
// expiry checks can be pinned in tests
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by the system time
type RealClock struct{}

// Now returns the current system time
func (RealClock) Now() time.Time {
	return time.Now()
}
