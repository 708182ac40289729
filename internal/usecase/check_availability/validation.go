package check_availability

import (
	"fmt"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.PartySize <= 0 {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidInput)
	}

	if req.Origin != domain.OriginCustomer && req.Origin != domain.OriginAdministrative {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, req.Origin)
	}

	return nil
}

// validateDuration проверяет длительность против политики
func validateDuration(duration int, policy domain.BookingPolicy) error {
	if duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if duration > policy.MaxDurationMinutes {
		return fmt.Errorf("%w: duration %d exceeds maximum %d", ErrInvalidInput, duration, policy.MaxDurationMinutes)
	}

	return nil
}

// exceedsAdvanceLimit проверяет, что дата выходит за горизонт бронирования
func exceedsAdvanceLimit(date time.Time, now time.Time, policy domain.BookingPolicy) bool {
	if !policy.HasAdvanceLimit() {
		return false
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, policy.MaxAdvanceDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	return dateOnly.After(maxDate)
}
