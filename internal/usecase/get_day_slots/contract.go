package get_day_slots

import (
	"context"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// VenueConfigClient интерфейс клиента сервиса конфигурации заведения
type VenueConfigClient interface {
	GetSchedule(ctx context.Context) (*domain.VenueSchedule, error)
	GetPolicy(ctx context.Context) (domain.BookingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
