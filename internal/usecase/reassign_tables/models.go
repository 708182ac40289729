package reassign_tables

// Request модель запроса на перенос бронирования на другие столы
type Request struct {
	ReservationID int64   // ID переносимого бронирования
	TableIDs      []int64 // Новый набор столов
}

// TableInfo информация о назначенном столе
type TableInfo struct {
	ID       int64
	Number   int
	Capacity int
	Section  string
}

// Response модель ответа с новым набором столов
type Response struct {
	ReservationID int64
	Tables        []TableInfo
}
