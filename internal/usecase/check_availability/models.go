package check_availability

import (
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// Request модель запроса на проверку доступности
type Request struct {
	Date            time.Time                // Дата бронирования (без времени)
	StartTime       types.TimeString         // Время начала слота (например, "19:00")
	DurationMinutes *int                     // Длительность в минутах (nil = максимум из политики)
	PartySize       int                      // Размер группы
	Origin          domain.ReservationOrigin // Источник запроса (клиент или администратор)
}

// TableInfo информация о столе в предлагаемой комбинации
type TableInfo struct {
	ID       int64
	Number   int
	Capacity int
	Section  string
}

// Response модель ответа c решением о доступности
type Response struct {
	Available bool

	// Причина отказа (пусто, если слот доступен)
	Reason string

	// Предлагаемая комбинация столов (пусто при отказе). Ответ носит
	// информационный характер: создание бронирования перепроверяет
	// доступность заново.
	Tables []TableInfo
}
