package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TableReservationService/pkg/ptr"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

func testSchedule() VenueSchedule {
	rules := make([]OpeningHoursRule, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		rule := OpeningHoursRule{Weekday: wd, Open: "18:00", Close: "23:45"}
		if wd == time.Monday {
			rule = OpeningHoursRule{Weekday: wd, IsClosed: true}
		}
		rules = append(rules, rule)
	}
	return VenueSchedule{OpeningHours: rules}
}

func TestResolveDay_WeekdayRule(t *testing.T) {
	schedule := testSchedule()

	// среда 2025-11-05
	window, open := schedule.ResolveDay(time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC))

	require.True(t, open)
	assert.Equal(t, minutes(18, 0), window.Start)
	assert.Equal(t, minutes(23, 45), window.End)
}

func TestResolveDay_ClosedWeekday(t *testing.T) {
	schedule := testSchedule()

	// понедельник 2025-11-03
	_, open := schedule.ResolveDay(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))

	assert.False(t, open)
}

func TestResolveDay_ClosedDateOverridesEverything(t *testing.T) {
	schedule := testSchedule()
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	schedule.ClosedDates = []ClosedDate{{Date: date, Reason: "санитарный день"}}
	// событие на закрытую дату не открывает зал
	schedule.SpecialEvents = []SpecialEvent{{
		Name: "дегустация",
		Date: date,
		Open: ptr.Ptr(types.TimeString("12:00")), Close: ptr.Ptr(types.TimeString("16:00")),
	}}

	_, open := schedule.ResolveDay(date)

	assert.False(t, open)
}

func TestResolveDay_SpecialEventCustomHours(t *testing.T) {
	schedule := testSchedule()
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	schedule.SpecialEvents = []SpecialEvent{{
		Name: "винный ужин",
		Date: date,
		Open: ptr.Ptr(types.TimeString("17:00")), Close: ptr.Ptr(types.TimeString("22:00")),
	}}

	window, open := schedule.ResolveDay(date)

	require.True(t, open)
	assert.Equal(t, minutes(17, 0), window.Start)
	assert.Equal(t, minutes(22, 0), window.End)
}

func TestResolveDay_SpecialEventWithoutHoursFallsBack(t *testing.T) {
	schedule := testSchedule()
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	schedule.SpecialEvents = []SpecialEvent{{Name: "живая музыка", Date: date}}

	window, open := schedule.ResolveDay(date)

	require.True(t, open)
	assert.Equal(t, minutes(18, 0), window.Start)
}

func TestResolveDay_MidnightSpanningWindow(t *testing.T) {
	schedule := testSchedule()
	for i := range schedule.OpeningHours {
		if schedule.OpeningHours[i].Weekday == time.Friday {
			schedule.OpeningHours[i].Open = "20:00"
			schedule.OpeningHours[i].Close = "02:00"
		}
	}

	// пятница 2025-11-07
	window, open := schedule.ResolveDay(time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC))

	require.True(t, open)
	assert.Equal(t, minutes(20, 0), window.Start)
	assert.Equal(t, minutes(26, 0), window.End)
}

func TestVenueSchedule_Validate(t *testing.T) {
	assert.NoError(t, testSchedule().Validate())

	missing := testSchedule()
	missing.OpeningHours = missing.OpeningHours[:6]
	assert.ErrorIs(t, missing.Validate(), ErrInvalidSchedule)

	duplicate := testSchedule()
	duplicate.OpeningHours = append(duplicate.OpeningHours, OpeningHoursRule{Weekday: time.Friday, Open: "10:00", Close: "12:00"})
	assert.ErrorIs(t, duplicate.Validate(), ErrInvalidSchedule)

	badTime := testSchedule()
	badTime.OpeningHours[2].Open = "25:99"
	assert.ErrorIs(t, badTime.Validate(), ErrInvalidSchedule)

	halfEvent := testSchedule()
	halfEvent.SpecialEvents = []SpecialEvent{{
		Name: "ужин",
		Date: time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		Open: ptr.Ptr(types.TimeString("17:00")),
	}}
	assert.ErrorIs(t, halfEvent.Validate(), ErrInvalidSchedule)
}
