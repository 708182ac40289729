package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityFixture() AvailabilityQuery {
	return AvailabilityQuery{
		Window: DayWindow{Start: minutes(18, 0), End: minutes(23, 45)},
		Policy: testPolicy(),
		Date:   time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		Now:    time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC),
		Tables: []Table{
			{ID: 1, Number: 1, Capacity: 2, Section: SectionIndoor},
			{ID: 2, Number: 2, Capacity: 3, Section: SectionWindow},
			{ID: 3, Number: 3, Capacity: 6, Section: SectionOutdoor},
		},
		AllowedSections: CustomerSections,
		StartMinutes:    minutes(19, 0),
		DurationMinutes: 120,
		PartySize:       5,
	}
}

func TestEvaluate_CustomerNeverGetsOutdoor(t *testing.T) {
	q := availabilityFixture()

	decision := Evaluate(q)

	require.True(t, decision.Available)
	require.Len(t, decision.Tables, 2)
	assert.Equal(t, 1, decision.Tables[0].Number)
	assert.Equal(t, 2, decision.Tables[1].Number)
	for _, table := range decision.Tables {
		assert.NotEqual(t, SectionOutdoor, table.Section)
	}
}

func TestEvaluate_OutsidePolicyWindow(t *testing.T) {
	q := availabilityFixture()
	q.StartMinutes = minutes(22, 0) // 22:00 + 120 минут выходит за закрытие

	decision := Evaluate(q)

	assert.False(t, decision.Available)
	assert.Equal(t, ReasonOutsidePolicyWindow, decision.Reason)
}

func TestEvaluate_NoCapacity(t *testing.T) {
	q := availabilityFixture()
	q.Reservations = []*Reservation{
		{
			ID: 10, PartySize: 2, Status: StatusConfirmed,
			StartMinutes: minutes(19, 0), DurationMinutes: 120,
			Tables: []Table{q.Tables[0]},
		},
		{
			ID: 11, PartySize: 3, Status: StatusConfirmed,
			StartMinutes: minutes(19, 0), DurationMinutes: 120,
			Tables: []Table{q.Tables[1]},
		},
	}

	decision := Evaluate(q)

	assert.False(t, decision.Available)
	assert.Equal(t, ReasonNoCapacity, decision.Reason)
}

func TestEvaluate_CancelledReservationReleasesTable(t *testing.T) {
	q := availabilityFixture()
	q.PartySize = 2
	q.Reservations = []*Reservation{
		{
			ID: 10, PartySize: 2, Status: StatusCancelled,
			StartMinutes: minutes(19, 0), DurationMinutes: 120,
			Tables: []Table{q.Tables[0]},
		},
	}

	decision := Evaluate(q)

	require.True(t, decision.Available)
	assert.Equal(t, 1, decision.Tables[0].Number)
}

func TestEvaluate_BufferBoundary(t *testing.T) {
	// стол занят 19:00-21:00, буфер 15 минут
	q := availabilityFixture()
	q.PartySize = 2
	q.Tables = q.Tables[:1]
	q.Policy.MinAdvanceMinutes = 0
	q.Reservations = []*Reservation{
		{
			ID: 10, PartySize: 2, Status: StatusConfirmed,
			StartMinutes: minutes(19, 0), DurationMinutes: 120,
			Tables: []Table{q.Tables[0]},
		},
	}

	// 21:15 - граница буфера, конфликта нет
	q.StartMinutes = minutes(21, 15)
	q.DurationMinutes = 120
	q.Window.End = minutes(23, 59)
	decision := Evaluate(q)
	assert.True(t, decision.Available)

	// слот раньше границы буфера конфликтует
	q.StartMinutes = minutes(21, 0)
	decision = Evaluate(q)
	assert.False(t, decision.Available)
	assert.Equal(t, ReasonNoCapacity, decision.Reason)
}

func TestEvaluate_ThresholdExceeded(t *testing.T) {
	q := availabilityFixture()
	q.Policy.MaxCapacityThresholdPercent = 40 // вместимость зала 11, порог 4.4 места
	q.PartySize = 2
	q.Reservations = []*Reservation{
		{
			ID: 10, PartySize: 3, Status: StatusConfirmed,
			StartMinutes: minutes(19, 30), DurationMinutes: 120,
			Tables: []Table{q.Tables[1]},
		},
	}

	decision := Evaluate(q)

	// занято 3, добавление стола на 2 даёт 5*100 > 40*11
	assert.False(t, decision.Available)
	assert.Equal(t, ReasonThresholdExceeded, decision.Reason)
}

func TestEvaluate_Idempotent(t *testing.T) {
	q := availabilityFixture()

	first := Evaluate(q)
	second := Evaluate(q)

	assert.Equal(t, first, second)
}

func TestCommittedCapacityAt_ExcludesOwnReservation(t *testing.T) {
	table := Table{ID: 1, Number: 1, Capacity: 4, Section: SectionIndoor}
	reservations := []*Reservation{
		{ID: 10, PartySize: 4, Status: StatusConfirmed, StartMinutes: minutes(19, 0), DurationMinutes: 120, Tables: []Table{table}},
		{ID: 11, PartySize: 2, Status: StatusConfirmed, StartMinutes: minutes(19, 0), DurationMinutes: 120},
	}
	interval := Interval{Start: minutes(19, 0), End: minutes(21, 0)}

	assert.Equal(t, 6, CommittedCapacityAt(reservations, interval, 0))
	assert.Equal(t, 2, CommittedCapacityAt(reservations, interval, 10))
}
