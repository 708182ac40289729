package venueconfig

import (
	"fmt"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// DayHours расписание работы на один день недели
type DayHours struct {
	Weekday  int     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	IsClosed bool    `json:"isClosed"`
	Open     *string `json:"open,omitempty"`  // "18:00"
	Close    *string `json:"close,omitempty"` // "23:45"
}

// ClosedDate дата полного закрытия заведения
type ClosedDate struct {
	Date   string `json:"date"` // "2025-12-24"
	Reason string `json:"reason"`
}

// SpecialEvent событие с опциональным переопределением часов работы
type SpecialEvent struct {
	Name  string  `json:"name"`
	Date  string  `json:"date"`
	Open  *string `json:"open,omitempty"`
	Close *string `json:"close,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// VenueSchedule полное расписание заведения из сервиса настроек
type VenueSchedule struct {
	OpeningHours  []DayHours     `json:"openingHours"`
	ClosedDates   []ClosedDate   `json:"closedDates"`
	SpecialEvents []SpecialEvent `json:"specialEvents"`
}

// BookingPolicy политика бронирования из сервиса настроек
type BookingPolicy struct {
	SlotGranularityMinutes      int `json:"slotGranularityMinutes"`
	MaxDurationMinutes          int `json:"maxDurationMinutes"`
	MinAdvanceMinutes           int `json:"minAdvanceMinutes"`
	MaxAdvanceDays              int `json:"maxAdvanceDays"`
	BufferMinutes               int `json:"bufferMinutes"`
	MaxPartySizeOnline          int `json:"maxPartySizeOnline"`
	MaxCapacityThresholdPercent int `json:"maxCapacityThresholdPercent"`
}

// ErrorResponse модель ошибки от сервиса настроек
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует и валидирует расписание.
// Некорректная конфигурация - ошибка, а не молчаливый дефолт.
func (s *VenueSchedule) ToDomain() (*domain.VenueSchedule, error) {
	schedule := &domain.VenueSchedule{
		OpeningHours:  make([]domain.OpeningHoursRule, 0, len(s.OpeningHours)),
		ClosedDates:   make([]domain.ClosedDate, 0, len(s.ClosedDates)),
		SpecialEvents: make([]domain.SpecialEvent, 0, len(s.SpecialEvents)),
	}

	for _, day := range s.OpeningHours {
		rule := domain.OpeningHoursRule{
			Weekday:  time.Weekday(day.Weekday),
			IsClosed: day.IsClosed,
		}
		if !day.IsClosed {
			if day.Open == nil || day.Close == nil {
				return nil, fmt.Errorf("%w: weekday %d is open but has no hours", ErrInvalidConfiguration, day.Weekday)
			}
			open, err := types.NewTimeStringFromString(*day.Open)
			if err != nil {
				return nil, fmt.Errorf("%w: weekday %d open: %v", ErrInvalidConfiguration, day.Weekday, err)
			}
			close, err := types.NewTimeStringFromString(*day.Close)
			if err != nil {
				return nil, fmt.Errorf("%w: weekday %d close: %v", ErrInvalidConfiguration, day.Weekday, err)
			}
			rule.Open, rule.Close = open, close
		}
		schedule.OpeningHours = append(schedule.OpeningHours, rule)
	}

	for _, closed := range s.ClosedDates {
		date, err := time.Parse(domain.DateFormat, closed.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: closed date %q: %v", ErrInvalidConfiguration, closed.Date, err)
		}
		schedule.ClosedDates = append(schedule.ClosedDates, domain.ClosedDate{Date: date, Reason: closed.Reason})
	}

	for _, event := range s.SpecialEvents {
		date, err := time.Parse(domain.DateFormat, event.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: special event %q date: %v", ErrInvalidConfiguration, event.Name, err)
		}
		domainEvent := domain.SpecialEvent{Name: event.Name, Date: date, Notes: event.Notes}
		if event.Open != nil {
			open, err := types.NewTimeStringFromString(*event.Open)
			if err != nil {
				return nil, fmt.Errorf("%w: special event %q open: %v", ErrInvalidConfiguration, event.Name, err)
			}
			domainEvent.Open = &open
		}
		if event.Close != nil {
			close, err := types.NewTimeStringFromString(*event.Close)
			if err != nil {
				return nil, fmt.Errorf("%w: special event %q close: %v", ErrInvalidConfiguration, event.Name, err)
			}
			domainEvent.Close = &close
		}
		schedule.SpecialEvents = append(schedule.SpecialEvents, domainEvent)
	}

	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return schedule, nil
}

// ToDomain конвертирует и валидирует политику бронирования.
// Нулевые поля заполняются дефолтами до валидации.
func (p *BookingPolicy) ToDomain() (domain.BookingPolicy, error) {
	policy := domain.BookingPolicy{
		SlotGranularityMinutes:      p.SlotGranularityMinutes,
		MaxDurationMinutes:          p.MaxDurationMinutes,
		MinAdvanceMinutes:           p.MinAdvanceMinutes,
		MaxAdvanceDays:              p.MaxAdvanceDays,
		BufferMinutes:               p.BufferMinutes,
		MaxPartySizeOnline:          p.MaxPartySizeOnline,
		MaxCapacityThresholdPercent: p.MaxCapacityThresholdPercent,
	}

	defaults := domain.DefaultBookingPolicy()
	if policy.SlotGranularityMinutes == 0 {
		policy.SlotGranularityMinutes = defaults.SlotGranularityMinutes
	}
	if policy.MaxDurationMinutes == 0 {
		policy.MaxDurationMinutes = defaults.MaxDurationMinutes
	}
	if policy.MaxPartySizeOnline == 0 {
		policy.MaxPartySizeOnline = defaults.MaxPartySizeOnline
	}
	if policy.MaxCapacityThresholdPercent == 0 {
		policy.MaxCapacityThresholdPercent = defaults.MaxCapacityThresholdPercent
	}

	if err := policy.Validate(); err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return policy, nil
}
