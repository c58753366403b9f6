package scheduling

import "time"

// Clock supplies the current time for the no-past-bookings check.
// Injected so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewRealClock() Clock { return realClock{} }
