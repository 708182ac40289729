package domain

// Interval is a half-open time window [Start, End) in minutes from
// midnight of the reservation date. End may exceed 24h for windows that
// span midnight.
//
// This is the single overlap primitive used both by the availability
// check and by the commit-time re-validation: two reservations that only
// touch at a boundary do not conflict.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether the two half-open intervals truly intersect.
// Strict inequalities: a reservation ending at 21:00 does not conflict
// with one starting at 21:00.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether the given minute falls inside the interval
// (start inclusive, end exclusive)
func (i Interval) Contains(minute int) bool {
	return minute >= i.Start && minute < i.End
}

// WithBuffer widens the interval by the mandatory idle minutes required
// between two reservations on the same table
func (i Interval) WithBuffer(bufferMinutes int) Interval {
	return Interval{Start: i.Start - bufferMinutes, End: i.End + bufferMinutes}
}

// Duration returns the interval length in minutes
func (i Interval) Duration() int {
	return i.End - i.Start
}
