package reassign_tables

import (
	"context"

	reassignTables "github.com/avdeev-m/TableReservationService/internal/usecase/reassign_tables"
)

type ReassignTablesUseCase interface {
	Execute(ctx context.Context, req *reassignTables.Request) (*reassignTables.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
