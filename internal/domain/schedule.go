package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// ErrInvalidSchedule возвращается при некорректной конфигурации расписания.
// Фатальная ошибка конфигурации: закрытый день никогда не должен
// превратиться в открытый из-за молчаливого дефолта.
var ErrInvalidSchedule = errors.New("invalid venue schedule")

// OpeningHoursRule opening window for one weekday. A close time at or
// before the open time means the window spans midnight.
type OpeningHoursRule struct {
	Weekday  time.Weekday
	IsClosed bool
	Open     types.TimeString
	Close    types.TimeString
}

// ClosedDate ad-hoc full closure of the venue, overriding everything else
// for that calendar date
type ClosedDate struct {
	Date   time.Time
	Reason string
}

// SpecialEvent per-date override of the opening window. Without custom
// hours the weekday rule still applies; a special event never overrides a
// closure.
type SpecialEvent struct {
	Name  string
	Date  time.Time
	Open  *types.TimeString
	Close *types.TimeString
	Notes string
}

// HasCustomHours returns true if the event carries its own opening window
func (e SpecialEvent) HasCustomHours() bool {
	return e.Open != nil && e.Close != nil
}

// DayWindow is the resolved open window of a single date, in minutes from
// midnight. End exceeds 24h for windows spanning into the next day.
type DayWindow struct {
	Start int
	End   int
}

// Interval returns the window as an overlap interval
func (w DayWindow) Interval() Interval {
	return Interval{Start: w.Start, End: w.End}
}

// VenueSchedule knows the weekly opening hours, ad-hoc closed dates and
// special-event overrides of the venue
type VenueSchedule struct {
	OpeningHours  []OpeningHoursRule
	ClosedDates   []ClosedDate
	SpecialEvents []SpecialEvent
}

// Validate checks the schedule for configuration errors: each weekday must
// appear exactly once and open days must carry valid times.
func (s VenueSchedule) Validate() error {
	seen := make(map[time.Weekday]bool, 7)
	for _, rule := range s.OpeningHours {
		if rule.Weekday < time.Sunday || rule.Weekday > time.Saturday {
			return fmt.Errorf("%w: unknown weekday index %d", ErrInvalidSchedule, rule.Weekday)
		}
		if seen[rule.Weekday] {
			return fmt.Errorf("%w: duplicate rule for %s", ErrInvalidSchedule, rule.Weekday)
		}
		seen[rule.Weekday] = true

		if rule.IsClosed {
			continue
		}
		if err := rule.Open.Validate(); err != nil {
			return fmt.Errorf("%w: %s open time: %v", ErrInvalidSchedule, rule.Weekday, err)
		}
		if err := rule.Close.Validate(); err != nil {
			return fmt.Errorf("%w: %s close time: %v", ErrInvalidSchedule, rule.Weekday, err)
		}
	}
	if len(seen) != 7 {
		return fmt.Errorf("%w: opening hours must cover all 7 weekdays, got %d", ErrInvalidSchedule, len(seen))
	}

	for _, event := range s.SpecialEvents {
		if event.Open == nil && event.Close == nil {
			continue
		}
		if !event.HasCustomHours() {
			return fmt.Errorf("%w: special event %q must set both open and close or neither", ErrInvalidSchedule, event.Name)
		}
		if err := event.Open.Validate(); err != nil {
			return fmt.Errorf("%w: special event %q open time: %v", ErrInvalidSchedule, event.Name, err)
		}
		if err := event.Close.Validate(); err != nil {
			return fmt.Errorf("%w: special event %q close time: %v", ErrInvalidSchedule, event.Name, err)
		}
	}

	return nil
}

// ResolveDay answers whether the venue is open on the given date and, if
// so, during which window. Resolution order: closed date > special event
// with custom hours > weekday rule.
func (s VenueSchedule) ResolveDay(date time.Time) (DayWindow, bool) {
	for _, closed := range s.ClosedDates {
		if isSameDay(closed.Date, date) {
			return DayWindow{}, false
		}
	}

	var open, close types.TimeString
	resolved := false

	for _, event := range s.SpecialEvents {
		if isSameDay(event.Date, date) && event.HasCustomHours() {
			open, close = *event.Open, *event.Close
			resolved = true
			break
		}
	}

	if !resolved {
		rule, ok := s.weekdayRule(date.Weekday())
		if !ok || rule.IsClosed {
			return DayWindow{}, false
		}
		open, close = rule.Open, rule.Close
	}

	window := DayWindow{Start: open.Minutes(), End: close.Minutes()}
	// закрытие раньше открытия = работа через полночь
	if window.End <= window.Start {
		window.End += MinutesPerDay
	}
	return window, true
}

func (s VenueSchedule) weekdayRule(weekday time.Weekday) (OpeningHoursRule, bool) {
	for _, rule := range s.OpeningHours {
		if rule.Weekday == weekday {
			return rule, true
		}
	}
	return OpeningHoursRule{}, false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
