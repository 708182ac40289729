package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TableReservationService/pkg/types"
)

func testPolicy() BookingPolicy {
	return BookingPolicy{
		SlotGranularityMinutes:      15,
		MaxDurationMinutes:          120,
		MinAdvanceMinutes:           60,
		MaxAdvanceDays:              30,
		BufferMinutes:               15,
		MaxPartySizeOnline:          8,
		MaxCapacityThresholdPercent: 100,
	}
}

func minutes(hh, mm int) int {
	return hh*60 + mm
}

func TestGenerateStartTimes_LastSlotFitsMaxDuration(t *testing.T) {
	// среда 18:00-23:45, шаг 15 минут, максимум 120 минут:
	// последний слот 21:45 (21:45 + 120 = 23:45), 22:00 не предлагается
	window := DayWindow{Start: minutes(18, 0), End: minutes(23, 45)}
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateStartTimes(window, testPolicy(), now, date)

	require.NotEmpty(t, slots)
	assert.Equal(t, minutes(18, 0), slots[0])
	assert.Equal(t, minutes(21, 45), slots[len(slots)-1])
	assert.NotContains(t, slots, minutes(22, 0))

	for _, slot := range slots {
		assert.GreaterOrEqual(t, slot, window.Start)
		assert.LessOrEqual(t, slot+testPolicy().MaxDurationMinutes, window.End)
	}
}

func TestGenerateStartTimes_WindowShorterThanMaxDuration(t *testing.T) {
	window := DayWindow{Start: minutes(18, 0), End: minutes(19, 30)}
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateStartTimes(window, testPolicy(), now, date)

	assert.Empty(t, slots)
}

func TestGenerateStartTimes_TodayFiltersByMinAdvance(t *testing.T) {
	window := DayWindow{Start: minutes(18, 0), End: minutes(23, 45)}
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	// сейчас 18:10, минимум за 60 минут: первый доступный слот 19:15
	now := time.Date(2025, 11, 5, 18, 10, 0, 0, time.UTC)

	slots := GenerateStartTimes(window, testPolicy(), now, date)

	require.NotEmpty(t, slots)
	assert.Equal(t, minutes(19, 15), slots[0])
}

func TestGenerateStartTimes_PastDateIsEmpty(t *testing.T) {
	window := DayWindow{Start: minutes(18, 0), End: minutes(23, 45)}
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)

	assert.Empty(t, GenerateStartTimes(window, testPolicy(), now, date))
}

func TestGenerateStartTimes_Deterministic(t *testing.T) {
	window := DayWindow{Start: minutes(18, 0), End: minutes(23, 45)}
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	first := GenerateStartTimes(window, testPolicy(), now, date)
	second := GenerateStartTimes(window, testPolicy(), now, date)

	assert.Equal(t, first, second)
}

func TestGenerateStartTimes_MidnightSpanningWindow(t *testing.T) {
	// пятница 20:00-02:00: окно продолжается в следующий день
	window := DayWindow{Start: minutes(20, 0), End: minutes(26, 0)}
	date := time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateStartTimes(window, testPolicy(), now, date)

	require.NotEmpty(t, slots)
	assert.Equal(t, minutes(24, 0), slots[len(slots)-1])
}

func TestIsOfferedSlot(t *testing.T) {
	window := DayWindow{Start: minutes(18, 0), End: minutes(23, 45)}
	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsOfferedSlot(window, testPolicy(), now, date, minutes(19, 0)))
	assert.False(t, IsOfferedSlot(window, testPolicy(), now, date, minutes(19, 7)))
	assert.False(t, IsOfferedSlot(window, testPolicy(), now, date, minutes(22, 0)))
}

func TestIsOfferedSlot_PublishedMidnightSlotIsBookable(t *testing.T) {
	// пятница 20:00-02:00: слот после полуночи публикуется как "00:00"
	// и должен приниматься при бронировании в этом же виде
	window := DayWindow{Start: minutes(20, 0), End: minutes(26, 0)}
	date := time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateStartTimes(window, testPolicy(), now, date)
	require.Contains(t, slots, minutes(24, 0))

	published := types.NewTimeStringFromMinutes(minutes(24, 0))
	assert.Equal(t, "00:00", published.String())

	assert.True(t, IsOfferedSlot(window, testPolicy(), now, date, published.Minutes()))
}

func TestNormalizeStartMinutes(t *testing.T) {
	spanning := DayWindow{Start: minutes(20, 0), End: minutes(26, 0)}

	// время после полуночи сдвигается на минутную ось окна
	assert.Equal(t, minutes(24, 30), NormalizeStartMinutes(spanning, minutes(0, 30)))

	// время внутри окна и время вне хвоста не трогаются
	assert.Equal(t, minutes(21, 0), NormalizeStartMinutes(spanning, minutes(21, 0)))
	assert.Equal(t, minutes(10, 0), NormalizeStartMinutes(spanning, minutes(10, 0)))

	// для окна внутри суток сдвига нет
	plain := DayWindow{Start: minutes(10, 0), End: minutes(22, 0)}
	assert.Equal(t, minutes(0, 30), NormalizeStartMinutes(plain, minutes(0, 30)))
}
