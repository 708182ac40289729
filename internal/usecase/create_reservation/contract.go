package create_reservation

import (
	"context"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByDate(ctx context.Context, filter domain.DayFilter) ([]*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetAll(ctx context.Context) ([]domain.Table, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Table, error)
}

// VenueConfigClient интерфейс клиента сервиса конфигурации заведения
type VenueConfigClient interface {
	GetSchedule(ctx context.Context) (*domain.VenueSchedule, error)
	GetPolicy(ctx context.Context) (domain.BookingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
