package check_availability

import (
	"context"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByDate(ctx context.Context, filter domain.DayFilter) ([]*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetAll(ctx context.Context) ([]domain.Table, error)
}

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
