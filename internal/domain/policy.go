package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy возвращается при некорректной конфигурации политики
// бронирования. Это фатальная ошибка конфигурации, а не ошибка запроса.
var ErrInvalidPolicy = errors.New("invalid booking policy")

// BookingPolicy is the venue-wide booking configuration. It is supplied by
// the external settings store and treated as read-only during a request.
type BookingPolicy struct {
	SlotGranularityMinutes      int
	MaxDurationMinutes          int
	MinAdvanceMinutes           int
	MaxAdvanceDays              int
	BufferMinutes               int
	MaxPartySizeOnline          int
	MaxCapacityThresholdPercent int
}

// DefaultBookingPolicy returns the policy used when the settings store has
// no explicit configuration
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		SlotGranularityMinutes:      DefaultSlotGranularityMinutes,
		MaxDurationMinutes:          DefaultMaxDurationMinutes,
		MinAdvanceMinutes:           DefaultMinAdvanceMinutes,
		MaxAdvanceDays:              DefaultMaxAdvanceDays,
		BufferMinutes:               DefaultBufferMinutes,
		MaxPartySizeOnline:          DefaultMaxPartySizeOnline,
		MaxCapacityThresholdPercent: DefaultMaxCapacityThresholdPercent,
	}
}

// Validate checks the policy for configuration errors. A broken policy is
// fatal at load time, never silently defaulted per request.
func (p BookingPolicy) Validate() error {
	if p.SlotGranularityMinutes < MinSlotGranularityMinutes || p.SlotGranularityMinutes > MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes=%d must be within [%d, %d]",
			ErrInvalidPolicy, p.SlotGranularityMinutes, MinSlotGranularityMinutes, MaxSlotGranularityMinutes)
	}
	if p.MaxDurationMinutes < MinDurationMinutes || p.MaxDurationMinutes > MaxDurationMinutesLimit {
		return fmt.Errorf("%w: maxDurationMinutes=%d must be within [%d, %d]",
			ErrInvalidPolicy, p.MaxDurationMinutes, MinDurationMinutes, MaxDurationMinutesLimit)
	}
	if p.MinAdvanceMinutes < 0 {
		return fmt.Errorf("%w: minAdvanceMinutes must not be negative", ErrInvalidPolicy)
	}
	if p.MaxAdvanceDays < 0 || p.MaxAdvanceDays > MaxAdvanceDaysLimit {
		return fmt.Errorf("%w: maxAdvanceDays=%d must be within [0, %d]",
			ErrInvalidPolicy, p.MaxAdvanceDays, MaxAdvanceDaysLimit)
	}
	if p.BufferMinutes < 0 || p.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes=%d must be within [0, %d]",
			ErrInvalidPolicy, p.BufferMinutes, MaxBufferMinutes)
	}
	if p.MaxPartySizeOnline <= 0 {
		return fmt.Errorf("%w: maxPartySizeOnline must be positive", ErrInvalidPolicy)
	}
	if p.MaxCapacityThresholdPercent <= 0 || p.MaxCapacityThresholdPercent > 100 {
		return fmt.Errorf("%w: maxCapacityThresholdPercent=%d must be within (0, 100]",
			ErrInvalidPolicy, p.MaxCapacityThresholdPercent)
	}
	return nil
}

// HasAdvanceLimit returns true if there is a limit on how far ahead
// bookings can be made
func (p BookingPolicy) HasAdvanceLimit() bool {
	return p.MaxAdvanceDays > 0
}
