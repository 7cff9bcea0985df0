package clock

import "time"

// Clock supplies the current time in the business timezone. Injected into
// services so tests can pin the wall clock.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type business struct {
	loc *time.Location
}

// NewBusiness returns a Clock reading the system time in loc.
func NewBusiness(loc *time.Location) Clock {
	return business{loc: loc}
}

func (b business) Now() time.Time {
	return time.Now().In(b.loc)
}

func (b business) Location() *time.Location {
	return b.loc
}

// Fixed is a settable clock for tests.
type Fixed struct {
	T time.Time
}

// NewFixed returns a Fixed clock pinned at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{T: t}
}

func (f *Fixed) Now() time.Time {
	return f.T
}

func (f *Fixed) Location() *time.Location {
	return f.T.Location()
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}

// Set pins the fixed clock at t.
func (f *Fixed) Set(t time.Time) {
	f.T = t
}
