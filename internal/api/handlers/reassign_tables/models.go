package reassign_tables

import (
	reassignTables "github.com/avdeev-m/TableReservationService/internal/usecase/reassign_tables"
)

// ReassignTablesRequest HTTP request model
type ReassignTablesRequest struct {
	TableIDs []int64 `json:"tableIds"`
}

// TableResponse данные назначенного стола
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Section  string `json:"section"`
}

// ReassignTablesResponse HTTP response model
type ReassignTablesResponse struct {
	ReservationID int64           `json:"reservationId"`
	Tables        []TableResponse `json:"tables"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reassignTables.Response) *ReassignTablesResponse {
	tables := make([]TableResponse, len(resp.Tables))
	for i, t := range resp.Tables {
		tables[i] = TableResponse{
			ID:       t.ID,
			Number:   t.Number,
			Capacity: t.Capacity,
			Section:  t.Section,
		}
	}

	return &ReassignTablesResponse{
		ReservationID: resp.ReservationID,
		Tables:        tables,
	}
}
