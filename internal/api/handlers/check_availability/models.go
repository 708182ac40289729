package check_availability

import (
	checkAvailability "github.com/avdeev-m/TableReservationService/internal/usecase/check_availability"
)

// TableResponse данные стола в предлагаемой комбинации
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Section  string `json:"section"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool            `json:"available"`
	Reason    string          `json:"reason,omitempty"`
	Tables    []TableResponse `json:"tables,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	tables := make([]TableResponse, len(resp.Tables))
	for i, t := range resp.Tables {
		tables[i] = TableResponse{
			ID:       t.ID,
			Number:   t.Number,
			Capacity: t.Capacity,
			Section:  t.Section,
		}
	}

	return &AvailabilityResponse{
		Available: resp.Available,
		Reason:    resp.Reason,
		Tables:    tables,
	}
}
