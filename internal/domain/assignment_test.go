package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestCombination_SmallestSurplus(t *testing.T) {
	// компания из 5 человек: {T1 cap 2, T2 cap 3} дают ровно 5,
	// T3 cap 6 дал бы излишек 1
	tables := []Table{
		{ID: 1, Number: 1, Capacity: 2, Section: SectionIndoor},
		{ID: 2, Number: 2, Capacity: 3, Section: SectionIndoor},
		{ID: 3, Number: 3, Capacity: 6, Section: SectionIndoor},
	}

	combination := FindBestCombination(tables, 5)

	require.Len(t, combination, 2)
	assert.Equal(t, 1, combination[0].Number)
	assert.Equal(t, 2, combination[1].Number)
}

func TestFindBestCombination_FewestTablesOnTie(t *testing.T) {
	tables := []Table{
		{ID: 1, Number: 1, Capacity: 2, Section: SectionIndoor},
		{ID: 2, Number: 2, Capacity: 2, Section: SectionIndoor},
		{ID: 3, Number: 3, Capacity: 4, Section: SectionIndoor},
	}

	// излишек 0 и у {T1,T2}, и у {T3}; выигрывает меньшее число столов
	combination := FindBestCombination(tables, 4)

	require.Len(t, combination, 1)
	assert.Equal(t, 3, combination[0].Number)
}

func TestFindBestCombination_LowestNumberOnFullTie(t *testing.T) {
	tables := []Table{
		{ID: 5, Number: 5, Capacity: 4, Section: SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: SectionIndoor},
	}

	combination := FindBestCombination(tables, 4)

	require.Len(t, combination, 1)
	assert.Equal(t, 2, combination[0].Number)
}

func TestFindBestCombination_NoCombinationFits(t *testing.T) {
	tables := []Table{
		{ID: 1, Number: 1, Capacity: 2, Section: SectionIndoor},
		{ID: 2, Number: 2, Capacity: 2, Section: SectionIndoor},
	}

	assert.Nil(t, FindBestCombination(tables, 10))
	assert.Nil(t, FindBestCombination(nil, 2))
	assert.Nil(t, FindBestCombination(tables, 0))
}

func TestFindBestCombination_Deterministic(t *testing.T) {
	tables := []Table{
		{ID: 3, Number: 3, Capacity: 4, Section: SectionIndoor},
		{ID: 1, Number: 1, Capacity: 2, Section: SectionWindow},
		{ID: 2, Number: 2, Capacity: 3, Section: SectionBar},
	}

	first := FindBestCombination(tables, 5)
	second := FindBestCombination(tables, 5)

	assert.Equal(t, first, second)
}

func TestValidateAssignment_CustomerOutdoorRejected(t *testing.T) {
	tables := []Table{
		{ID: 1, Number: 1, Capacity: 4, Section: SectionOutdoor},
	}

	err := ValidateAssignment(tables, 2, OriginCustomer, nil, Interval{minutes(19, 0), minutes(21, 0)}, 15, 0)

	assert.ErrorIs(t, err, ErrOutdoorNotAllowed)
}

func TestValidateAssignment_AdminOutdoorAllowed(t *testing.T) {
	tables := []Table{
		{ID: 1, Number: 1, Capacity: 4, Section: SectionOutdoor},
	}

	err := ValidateAssignment(tables, 2, OriginAdministrative, nil, Interval{minutes(19, 0), minutes(21, 0)}, 15, 0)

	assert.NoError(t, err)
}

func TestValidateAssignment_InsufficientCapacity(t *testing.T) {
	tables := []Table{
		{ID: 1, Number: 1, Capacity: 2, Section: SectionIndoor},
	}

	err := ValidateAssignment(tables, 6, OriginAdministrative, nil, Interval{minutes(19, 0), minutes(21, 0)}, 15, 0)

	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestValidateAssignment_OverlapConflict(t *testing.T) {
	table := Table{ID: 1, Number: 1, Capacity: 4, Section: SectionIndoor}
	existing := []*Reservation{
		{
			ID:              10,
			PartySize:       2,
			StartMinutes:    minutes(19, 0),
			DurationMinutes: 120,
			Status:          StatusConfirmed,
			Tables:          []Table{table},
		},
	}

	err := ValidateAssignment([]Table{table}, 2, OriginAdministrative, existing, Interval{minutes(20, 0), minutes(22, 0)}, 15, 0)
	assert.ErrorIs(t, err, ErrTableConflict)

	// перенос самого бронирования не конфликтует с собственной бронью
	err = ValidateAssignment([]Table{table}, 2, OriginAdministrative, existing, Interval{minutes(20, 0), minutes(22, 0)}, 15, 10)
	assert.NoError(t, err)
}
