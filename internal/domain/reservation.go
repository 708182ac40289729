package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// ReservationOrigin distinguishes customer-facing bookings from staff-entered ones
type ReservationOrigin string

const (
	OriginCustomer       ReservationOrigin = "customer"
	OriginAdministrative ReservationOrigin = "administrative"
)

// Customer contact details attached to a reservation
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Reservation represents a table reservation in the venue.
// Assigned tables form a set: a grouped multi-table booking is a single
// reservation referencing several tables.
//
// Date is the service day and StartMinutes counts from that day's
// midnight. A booking on the after-midnight tail of a window spanning
// midnight keeps the service day's date with StartMinutes >= 1440, so
// all reservations of one service day share a single minute axis.
type Reservation struct {
	ID              int64
	Customer        Customer
	PartySize       int
	Date            time.Time
	StartMinutes    int
	DurationMinutes int
	Status          ReservationStatus
	Origin          ReservationOrigin
	Tables          []Table // may be empty = unassigned

	SpecialRequests *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still holds its tables
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled && r.Status != StatusNoShow
}

// IsTerminal returns true if the reservation reached a final status
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled || r.Status == StatusNoShow
}

// CanBeCancelled returns true if the reservation may still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return !r.IsTerminal()
}

// Interval returns the occupied time window in minutes from midnight
// of the service day
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartMinutes, End: r.StartMinutes + r.DurationMinutes}
}

// StartDateTime returns the absolute start instant of the reservation
func (r *Reservation) StartDateTime() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location()).
		Add(time.Duration(r.StartMinutes) * time.Minute)
}

// EndDateTime returns the absolute end instant of the reservation
func (r *Reservation) EndDateTime() time.Time {
	return r.StartDateTime().Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// NeedsAttention reports whether the party has not been seated within the
// grace period after its start time. The flag is always derived, never
// stored: it clears the instant the status leaves pending/confirmed or if
// the reference clock moves back below the threshold.
func (r *Reservation) NeedsAttention(now time.Time) bool {
	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return false
	}
	threshold := r.StartDateTime().Add(NeedsAttentionGraceMinutes * time.Minute)
	return now.After(threshold)
}

// AssignedCapacity returns the combined capacity of the assigned tables
func (r *Reservation) AssignedCapacity() int {
	return TotalCapacity(r.Tables)
}

// IsMultiTable returns true for grouped bookings spanning several tables
func (r *Reservation) IsMultiTable() bool {
	return len(r.Tables) > 1
}

// HoldsTable returns true if the reservation has the given table assigned
func (r *Reservation) HoldsTable(tableID int64) bool {
	for _, t := range r.Tables {
		if t.ID == tableID {
			return true
		}
	}
	return false
}

// CommittedCapacity returns the capacity the reservation holds at a given
// point in time. Assigned reservations count their tables' seats;
// unassigned ones count the party size.
func (r *Reservation) CommittedCapacity() int {
	if len(r.Tables) > 0 {
		return r.AssignedCapacity()
	}
	return r.PartySize
}

// DayFilter фильтр для выборки бронирований на дату
type DayFilter struct {
	Date            time.Time
	Status          *ReservationStatus // nil = без фильтра по статусу
	IncludeInactive bool               // включать ли отменённые и no-show
}

// CombineWithPreviousDay merges the service day's reservations with the
// previous day's ones that spill past midnight, shifting the latter onto
// the current day's minute axis (negative start). A hold until 01:30
// after the previous day's dinner must block this day's early slots.
func CombineWithPreviousDay(current, previous []*Reservation) []*Reservation {
	combined := make([]*Reservation, 0, len(current)+len(previous))
	combined = append(combined, current...)

	for _, r := range previous {
		if r.Interval().End <= MinutesPerDay {
			continue
		}
		shifted := *r
		shifted.StartMinutes -= MinutesPerDay
		combined = append(combined, &shifted)
	}

	return combined
}
