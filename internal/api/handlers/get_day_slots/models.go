package get_day_slots

import (
	"github.com/avdeev-m/TableReservationService/internal/domain"
	getDaySlots "github.com/avdeev-m/TableReservationService/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date               string   `json:"date"`
	IsOpen             bool     `json:"isOpen"`
	OpenTime           *string  `json:"openTime,omitempty"`
	CloseTime          *string  `json:"closeTime,omitempty"`
	GranularityMinutes int      `json:"granularityMinutes"`
	Slots              []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	result := &DaySlotsResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		IsOpen:             resp.IsOpen,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}

	if resp.OpenTime != nil {
		openTime := resp.OpenTime.String()
		result.OpenTime = &openTime
	}
	if resp.CloseTime != nil {
		closeTime := resp.CloseTime.String()
		result.CloseTime = &closeTime
	}

	return result
}
