package domain

import (
	"errors"
	"sort"
)

var (
	// ErrOutdoorNotAllowed возвращается при попытке назначить
	// клиентскому бронированию стол вне разрешённых секций.
	// Жёсткий инвариант: никогда не исправляется молча.
	ErrOutdoorNotAllowed = errors.New("customer reservations cannot be assigned outside customer sections")

	// ErrInsufficientCapacity возвращается, когда суммарная вместимость
	// выбранных столов меньше размера компании
	ErrInsufficientCapacity = errors.New("combined table capacity is below the party size")

	// ErrTableConflict возвращается, когда выбранный стол занят
	// пересекающимся бронированием
	ErrTableConflict = errors.New("table already holds an overlapping reservation")

	// ErrNoTables возвращается для пустого набора столов
	ErrNoTables = errors.New("no tables given")
)

// FindBestCombination selects the minimal sufficient combination of tables
// for the party: smallest capacity surplus first, then fewest tables, then
// lowest table numbers. Deterministic for identical inputs. Returns nil if
// no combination of up to MaxTablesPerReservation tables can seat the
// party.
func FindBestCombination(candidates []Table, partySize int) []Table {
	if partySize <= 0 || len(candidates) == 0 {
		return nil
	}

	sorted := make([]Table, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	var best []Table
	bestSurplus := 0

	var walk func(start int, current []Table, capacity int)
	walk = func(start int, current []Table, capacity int) {
		if capacity >= partySize {
			surplus := capacity - partySize
			if better(current, surplus, best, bestSurplus) {
				best = append([]Table(nil), current...)
				bestSurplus = surplus
			}
			// добавление столов дальше только увеличит излишек
			return
		}
		if len(current) == MaxTablesPerReservation {
			return
		}
		for i := start; i < len(sorted); i++ {
			walk(i+1, append(current, sorted[i]), capacity+sorted[i].Capacity)
		}
	}
	walk(0, nil, 0)

	return best
}

// better compares a candidate combination against the current best by
// (surplus, table count, table numbers)
func better(candidate []Table, surplus int, best []Table, bestSurplus int) bool {
	if best == nil {
		return true
	}
	if surplus != bestSurplus {
		return surplus < bestSurplus
	}
	if len(candidate) != len(best) {
		return len(candidate) < len(best)
	}
	for i := range candidate {
		if candidate[i].Number != best[i].Number {
			return candidate[i].Number < best[i].Number
		}
	}
	return false
}

// ValidateAssignment validates an explicit table set for a reservation
// draft: section restrictions for customer origin, capacity sufficiency,
// and freedom from overlapping holds. The same overlap primitive guards
// the commit path; excludeReservationID skips the reservation's own prior
// occupancy during re-assignment.
func ValidateAssignment(
	tables []Table,
	partySize int,
	origin ReservationOrigin,
	reservations []*Reservation,
	interval Interval,
	bufferMinutes int,
	excludeReservationID int64,
) error {
	if len(tables) == 0 {
		return ErrNoTables
	}

	if origin == OriginCustomer {
		for _, t := range tables {
			if !t.Section.CustomerBookable() {
				return ErrOutdoorNotAllowed
			}
		}
	}

	if TotalCapacity(tables) < partySize {
		return ErrInsufficientCapacity
	}

	for _, t := range tables {
		if !TableFree(t, reservations, interval, bufferMinutes, excludeReservationID) {
			return ErrTableConflict
		}
	}

	return nil
}
