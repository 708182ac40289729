package domain

import "time"

// RejectReason typed reason for an unavailable booking request. These are
// expected, user-facing outcomes, not faults.
type RejectReason string

const (
	ReasonVenueClosed         RejectReason = "venue-closed"
	ReasonOutsidePolicyWindow RejectReason = "outside-policy-window"
	ReasonPartyTooLarge       RejectReason = "party-too-large"
	ReasonNoCapacity          RejectReason = "no-capacity"
	ReasonThresholdExceeded   RejectReason = "threshold-exceeded"
)

// AvailabilityDecision outcome of an availability evaluation. When
// available, Tables carries the winning combination.
type AvailabilityDecision struct {
	Available bool
	Reason    RejectReason
	Tables    []Table
}

// AvailabilityQuery input of the availability evaluation. The same
// evaluation runs on the read path and, against freshly locked data,
// immediately before commit - the second run is the race-safety guard.
type AvailabilityQuery struct {
	Window          DayWindow
	Policy          BookingPolicy
	Date            time.Time
	Now             time.Time
	StartMinutes    int
	DurationMinutes int
	PartySize       int
	AllowedSections []TableSection
	Tables          []Table
	Reservations    []*Reservation

	// ExcludeReservationID skips the reservation's own occupancy when
	// re-evaluating for a move; 0 for new bookings
	ExcludeReservationID int64
}

// Evaluate decides whether the requested booking fits: the start must be
// an offered slot, a free minimal-surplus table combination must exist in
// the allowed sections, and the venue-wide capacity threshold must hold.
func Evaluate(q AvailabilityQuery) AvailabilityDecision {
	if !IsOfferedSlot(q.Window, q.Policy, q.Now, q.Date, q.StartMinutes) {
		return AvailabilityDecision{Available: false, Reason: ReasonOutsidePolicyWindow}
	}

	start := NormalizeStartMinutes(q.Window, q.StartMinutes)
	interval := Interval{Start: start, End: start + q.DurationMinutes}

	candidates := make([]Table, 0, len(q.Tables))
	for _, t := range q.Tables {
		if t.Capacity >= 1 && t.SectionIn(q.AllowedSections) {
			candidates = append(candidates, t)
		}
	}

	free := make([]Table, 0, len(candidates))
	for _, t := range candidates {
		if TableFree(t, q.Reservations, interval, q.Policy.BufferMinutes, q.ExcludeReservationID) {
			free = append(free, t)
		}
	}

	combination := FindBestCombination(free, q.PartySize)
	if combination == nil {
		return AvailabilityDecision{Available: false, Reason: ReasonNoCapacity}
	}

	if ExceedsCapacityThreshold(q.Reservations, q.Tables, interval, TotalCapacity(combination), q.Policy.MaxCapacityThresholdPercent, q.ExcludeReservationID) {
		return AvailabilityDecision{Available: false, Reason: ReasonThresholdExceeded}
	}

	return AvailabilityDecision{Available: true, Tables: combination}
}

// TableFree reports whether no active reservation holds the table within
// the buffered window. Cancelled and no-show reservations release their
// tables; excludeReservationID skips a reservation's own hold.
func TableFree(table Table, reservations []*Reservation, interval Interval, bufferMinutes int, excludeReservationID int64) bool {
	buffered := interval.WithBuffer(bufferMinutes)
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeReservationID != 0 && r.ID == excludeReservationID {
			continue
		}
		if !r.HoldsTable(table.ID) {
			continue
		}
		if r.Interval().Overlaps(buffered) {
			return false
		}
	}
	return true
}

// CommittedCapacityAt returns the total capacity committed by active
// reservations overlapping the interval
func CommittedCapacityAt(reservations []*Reservation, interval Interval, excludeReservationID int64) int {
	total := 0
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeReservationID != 0 && r.ID == excludeReservationID {
			continue
		}
		if r.Interval().Overlaps(interval) {
			total += r.CommittedCapacity()
		}
	}
	return total
}

// ExceedsCapacityThreshold reports whether committing addedCapacity on top
// of the already committed capacity would push the venue past the
// configured percentage cap. Protects walk-in and overflow capacity even
// when individual tables are free.
func ExceedsCapacityThreshold(
	reservations []*Reservation,
	allTables []Table,
	interval Interval,
	addedCapacity int,
	thresholdPercent int,
	excludeReservationID int64,
) bool {
	venueCapacity := TotalCapacity(allTables)
	if venueCapacity == 0 || thresholdPercent >= 100 {
		return false
	}

	committed := CommittedCapacityAt(reservations, interval, excludeReservationID)
	return (committed+addedCapacity)*100 > thresholdPercent*venueCapacity
}
