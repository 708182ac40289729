package get_occupancy

import (
	"context"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/service/occupancy/models"
)

type OccupancyService interface {
	Snapshot(ctx context.Context, at *time.Time) (*models.SnapshotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
