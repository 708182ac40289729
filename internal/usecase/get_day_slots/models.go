package get_day_slots

import (
	"time"

	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// Request модель запроса на получение слотов дня
type Request struct {
	Date time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со слотами дня
type Response struct {
	Date   time.Time // Запрошенная дата
	IsOpen bool      // Открыто ли заведение в эту дату

	// Окно работы заведения в эту дату (nil, если закрыто)
	OpenTime  *types.TimeString
	CloseTime *types.TimeString

	GranularityMinutes int // Шаг сетки слотов

	// Времена начала, доступные для бронирования. Пустой список - заведение
	// открыто, но ни один слот не помещается (или дата в прошлом).
	Slots []types.TimeString
}
