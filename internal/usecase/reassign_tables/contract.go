package reassign_tables

import (
	"context"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByDate(ctx context.Context, filter domain.DayFilter) ([]*domain.Reservation, error)
	ReplaceTables(ctx context.Context, id int64, tables []domain.Table) error
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Table, error)
}

// VenueConfigClient интерфейс клиента сервиса конфигурации заведения
type VenueConfigClient interface {
	GetPolicy(ctx context.Context) (domain.BookingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
