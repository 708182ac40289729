package models

// TableStatus статус стола в моменте
type TableStatus string

const (
	// StatusFree стол свободен в запрошенный момент
	StatusFree TableStatus = "free"

	// StatusOccupied стол занят активным бронированием
	StatusOccupied TableStatus = "occupied"
)

// TableOccupancy состояние одного стола
type TableOccupancy struct {
	TableID  int64       `json:"tableId"`
	Number   int         `json:"number"`
	Capacity int         `json:"capacity"`
	Section  string      `json:"section"`
	Status   TableStatus `json:"status"`

	// Данные удерживающего бронирования (только для занятых столов)
	ReservationID *int64 `json:"reservationId,omitempty"`
	PartySize     *int   `json:"partySize,omitempty"`
	UntilTime     *string `json:"untilTime,omitempty"` // "21:00"
}

// SnapshotResponse мгновенный срез занятости зала.
// Срез вычисляется заново на каждый запрос, ничего не кэшируется.
type SnapshotResponse struct {
	At     string           `json:"at"` // момент среза, RFC 3339
	Tables []TableOccupancy `json:"tables"`

	TotalTables    int `json:"totalTables"`
	OccupiedTables int `json:"occupiedTables"`
	TotalCapacity  int `json:"totalCapacity"`
	SeatedGuests   int `json:"seatedGuests"`
}
