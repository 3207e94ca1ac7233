// Package system provides the wall-clock implementation of the Clock
// interfaces used by the cache and the reader core.
package system

import "time"

// Clock reads the system time in UTC.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current UTC time.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
