package models

import (
	"errors"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetDayReservationsRequest запрос на получение бронирований дня
type GetDayReservationsRequest struct {
	Date            time.Time `json:"date"`
	Status          *string   `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDayReservationsRequest) ToDomainFilter() (domain.DayFilter, error) {
	filter := domain.DayFilter{
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// TableResponse данные назначенного стола
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Section  string `json:"section"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	CustomerPhone   string          `json:"customerPhone"`
	PartySize       int             `json:"partySize"`
	Date            string          `json:"date"`      // "2025-10-15"
	StartTime       string          `json:"startTime"` // "19:00"
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	Origin          string          `json:"origin"`
	Tables          []TableResponse `json:"tables"`

	// NeedsAttention производный флаг: группа не посажена в течение
	// льготного периода после начала брони. Никогда не хранится в БД.
	NeedsAttention bool `json:"needsAttention"`

	SpecialRequests    *string `json:"specialRequests,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует доменное бронирование в response.
// Момент now нужен для вычисления флага needsAttention.
func FromDomainReservation(res *domain.Reservation, now time.Time) *ReservationResponse {
	tables := make([]TableResponse, len(res.Tables))
	for i, t := range res.Tables {
		tables[i] = TableResponse{
			ID:       t.ID,
			Number:   t.Number,
			Capacity: t.Capacity,
			Section:  string(t.Section),
		}
	}

	resp := &ReservationResponse{
		ID:              res.ID,
		CustomerName:    res.Customer.Name,
		CustomerEmail:   res.Customer.Email,
		CustomerPhone:   res.Customer.Phone,
		PartySize:       res.PartySize,
		Date:            res.Date.Format(domain.DateFormat),
		StartTime:       types.NewTimeStringFromMinutes(res.StartMinutes).String(),
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		Origin:          string(res.Origin),
		Tables:          tables,
		NeedsAttention:  res.NeedsAttention(now),
		SpecialRequests: res.SpecialRequests,
		CreatedAt:       res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       res.UpdatedAt.Format(time.RFC3339),
	}

	resp.CancellationReason = res.CancellationReason
	if res.CancelledAt != nil {
		cancelledAt := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainReservationList конвертирует список доменных бронирований
func FromDomainReservationList(reservations []*domain.Reservation, now time.Time) *ReservationListResponse {
	result := make([]*ReservationResponse, len(reservations))
	for i, res := range reservations {
		result[i] = FromDomainReservation(res, now)
	}

	return &ReservationListResponse{
		Reservations: result,
		Total:        len(result),
	}
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return parsed, nil
}
