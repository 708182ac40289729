package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.PartySize <= 0 {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Origin != domain.OriginCustomer && req.Origin != domain.OriginAdministrative {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, req.Origin)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests exceeds %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
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

// resolveOriginRules определяет начальный статус и допустимые секции
// по источнику бронирования.
//
// Клиентские бронирования всегда создаются pending, ограничены лимитом
// размера группы и секциями зала, доступными для онлайн-бронирования.
// Явное назначение столов клиенту недоступно. Административные
// бронирования создаются confirmed (или с явно заданным начальным
// статусом) и свободны от клиентских ограничений.
func resolveOriginRules(req *Request, policy domain.BookingPolicy) (domain.ReservationStatus, []domain.TableSection, error) {
	if req.Origin == domain.OriginCustomer {
		if req.PartySize > policy.MaxPartySizeOnline {
			return "", nil, fmt.Errorf("%w: party of %d exceeds limit %d",
				ErrPartyTooLarge, req.PartySize, policy.MaxPartySizeOnline)
		}
		if len(req.TableIDs) > 0 {
			return "", nil, fmt.Errorf("%w: customers cannot pick tables explicitly", ErrInvalidInput)
		}
		if req.InitialStatus != nil {
			return "", nil, fmt.Errorf("%w: customers cannot set an initial status", ErrInvalidInput)
		}
		return domain.StatusPending, domain.CustomerSections, nil
	}

	status := domain.StatusConfirmed
	if req.InitialStatus != nil {
		if *req.InitialStatus != domain.StatusPending && *req.InitialStatus != domain.StatusConfirmed {
			return "", nil, fmt.Errorf("%w: initial status must be pending or confirmed", ErrInvalidInput)
		}
		status = *req.InitialStatus
	}

	return status, domain.AllSections, nil
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
