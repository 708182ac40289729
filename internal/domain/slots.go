package domain

import "time"

// GenerateStartTimes генерирует упорядоченный список стартовых времен
// бронирования для открытого окна дня, в минутах от полуночи.
//
// Слоты идут от начала окна с шагом slotGranularityMinutes; последний
// предлагаемый слот - тот, после которого максимальная длительность ещё
// помещается в окно (slot + maxDurationMinutes <= window.End). Для
// сегодняшней даты отбрасываются слоты раньше now + minAdvanceMinutes.
//
// Чистая функция своих аргументов: при одинаковых входных данных
// последовательность детерминированно совпадает. Политика должна быть
// провалидирована заранее (Validate).
func GenerateStartTimes(window DayWindow, policy BookingPolicy, now time.Time, date time.Time) []int {
	if isDateInPast(date, now) {
		return []int{}
	}

	slots := make([]int, 0)
	for slot := window.Start; slot+policy.MaxDurationMinutes <= window.End; slot += policy.SlotGranularityMinutes {
		slots = append(slots, slot)
	}

	if !isSameDay(date, now) {
		return slots
	}

	// для сегодняшней даты учитываем минимальное время до брони
	minAllowed := MinutesOfDay(now) + policy.MinAdvanceMinutes

	filtered := make([]int, 0, len(slots))
	for _, slot := range slots {
		if slot >= minAllowed {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// IsOfferedSlot проверяет, что стартовое время входит в сгенерированную
// последовательность слотов для данного окна и политики. Время после
// полуночи приводится к минутной оси окна: слот "00:00" окна 20:00-02:00
// публикуется и бронируется как минута 1440.
func IsOfferedSlot(window DayWindow, policy BookingPolicy, now time.Time, date time.Time, startMinutes int) bool {
	startMinutes = NormalizeStartMinutes(window, startMinutes)
	for _, slot := range GenerateStartTimes(window, policy, now, date) {
		if slot == startMinutes {
			return true
		}
	}
	return false
}

// NormalizeStartMinutes переводит время суток "после полуночи" на минутную
// ось окна, уходящего за полночь: значение раньше открытия, попадающее в
// хвост окна после сдвига на сутки, сдвигается. Остальные значения
// возвращаются без изменений.
func NormalizeStartMinutes(window DayWindow, startMinutes int) int {
	if window.End > MinutesPerDay && startMinutes < window.Start {
		if shifted := startMinutes + MinutesPerDay; shifted < window.End {
			return shifted
		}
	}
	return startMinutes
}

// MinutesOfDay returns the number of minutes elapsed since local midnight
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
