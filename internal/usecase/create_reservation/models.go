package create_reservation

import (
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string // Имя гостя
	CustomerEmail string // Email (опционально)
	CustomerPhone string // Телефон

	PartySize       int              // Размер группы
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота
	DurationMinutes *int             // Длительность (nil = максимум из политики)

	Origin          domain.ReservationOrigin // Источник бронирования
	SpecialRequests *string                  // Пожелания гостя (опционально)

	// TableIDs явное назначение столов (только для административных
	// бронирований; пустой список = автоматический подбор)
	TableIDs []int64

	// InitialStatus начальный статус для административных бронирований
	// (nil = confirmed). Клиентские бронирования всегда создаются pending.
	InitialStatus *domain.ReservationStatus
}

// TableInfo информация о назначенном столе
type TableInfo struct {
	ID       int64
	Number   int
	Capacity int
	Section  string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	PartySize       int
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	Origin          string
	Tables          []TableInfo
	SpecialRequests *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
