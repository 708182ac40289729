package get_day_reservations

import (
	"context"

	"github.com/avdeev-m/TableReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetDayReservations(ctx context.Context, req *models.GetDayReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
