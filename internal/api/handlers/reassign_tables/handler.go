package reassign_tables

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
	reassignTables "github.com/avdeev-m/TableReservationService/internal/usecase/reassign_tables"
)

const (
	msgInvalidID           = "некорректный идентификатор бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTables       = "некорректный набор столов"
	msgReservationNotFound = "бронирование не найдено"
	msgReservationTerminal = "завершённое бронирование нельзя перенести"
	msgTableNotFound       = "указанный стол не найден"
	msgTableConflict       = "стол занят пересекающимся бронированием"
	msgInsufficientSeats   = "указанные столы не вмещают группу"
	msgOutdoorNotAllowed   = "клиентское бронирование нельзя перенести на открытую веранду"
)

type Handler struct {
	useCase ReassignTablesUseCase
	logger  Logger
}

func NewHandler(useCase ReassignTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}/tables
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /reservations/{id}/tables - Invalid id %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req ReassignTablesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id}/tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reassignTables.Request{
		ReservationID: id,
		TableIDs:      req.TableIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, reassignTables.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id}/tables - Invalid input: id=%d, %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidTables)

		case errors.Is(err, reassignTables.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id}/tables - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reassignTables.ErrReservationTerminal):
			h.logger.Warn("PUT /reservations/{id}/tables - Terminal reservation: id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgReservationTerminal)

		case errors.Is(err, reassignTables.ErrTableNotFound):
			h.logger.Warn("PUT /reservations/{id}/tables - Table not found: id=%d, tables=%v", id, req.TableIDs)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, reassignTables.ErrTableConflict):
			h.logger.Warn("PUT /reservations/{id}/tables - Table conflict: id=%d, tables=%v", id, req.TableIDs)
			handlers.RespondError(w, http.StatusConflict, msgTableConflict)

		case errors.Is(err, reassignTables.ErrInsufficientCapacity):
			h.logger.Warn("PUT /reservations/{id}/tables - Insufficient capacity: id=%d, tables=%v", id, req.TableIDs)
			handlers.RespondBadRequest(w, msgInsufficientSeats)

		case errors.Is(err, reassignTables.ErrOutdoorNotAllowed):
			h.logger.Warn("PUT /reservations/{id}/tables - Outdoor not allowed: id=%d", id)
			handlers.RespondBadRequest(w, msgOutdoorNotAllowed)

		default:
			h.logger.Error("PUT /reservations/{id}/tables - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id}/tables - Reassigned: id=%d, tables=%v", id, req.TableIDs)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
