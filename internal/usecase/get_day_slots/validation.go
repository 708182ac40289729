package get_day_slots

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
