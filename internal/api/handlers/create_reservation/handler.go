package create_reservation

import (
	"errors"
	"net/http"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
	"github.com/avdeev-m/TableReservationService/internal/api/middleware"
	"github.com/avdeev-m/TableReservationService/internal/domain"
	createReservation "github.com/avdeev-m/TableReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные бронирования"
	msgInvalidDateOrTime   = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgVenueClosed         = "заведение закрыто в выбранную дату"
	msgInvalidTimeSlot     = "время начала не входит в сетку слотов"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgPartyTooLarge       = "размер группы превышает лимит онлайн-бронирования"
	msgNoCapacity          = "нет свободной комбинации столов на выбранное время"
	msgCapacityThreshold   = "зал слишком загружен на выбранное время"
	msgOutdoorNotAllowed   = "столы открытой веранды недоступны для онлайн-бронирования"
	msgTableNotFound       = "указанный стол не найден"
	msgTableConflict       = "стол занят пересекающимся бронированием"
	msgInsufficientSeats   = "указанные столы не вмещают группу"
	msgScheduleUnavailable = "расписание заведения недоступно"
)

const msgInvalidStaffID = "некорректный заголовок X-Staff-ID"

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Запросы персонала создают административные бронирования.
	// Формат заголовка проверяется так же, как на защищённых маршрутах.
	staffID, err := middleware.StaffID(r)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid staff header: %v", err)
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidStaffID)
		return
	}

	origin := domain.OriginCustomer
	if staffID != 0 {
		origin = domain.OriginAdministrative
	}

	useCaseReq, err := req.ToUseCaseRequest(origin)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrVenueClosed):
			h.logger.Warn("POST /reservations - Venue closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgVenueClosed)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrPartyTooLarge):
			h.logger.Warn("POST /reservations - Party too large: partySize=%d", req.PartySize)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, createReservation.ErrOutdoorNotAllowed):
			h.logger.Warn("POST /reservations - Outdoor tables requested by customer")
			handlers.RespondBadRequest(w, msgOutdoorNotAllowed)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: tables=%v", req.TableIDs)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrTableConflict):
			h.logger.Warn("POST /reservations - Table conflict: tables=%v", req.TableIDs)
			handlers.RespondError(w, http.StatusConflict, msgTableConflict)

		case errors.Is(err, createReservation.ErrInsufficientCapacity):
			h.logger.Warn("POST /reservations - Insufficient capacity: tables=%v, partySize=%d",
				req.TableIDs, req.PartySize)
			handlers.RespondBadRequest(w, msgInsufficientSeats)

		case errors.Is(err, createReservation.ErrNoCapacity):
			h.logger.Warn("POST /reservations - No capacity: date=%s, time=%s, partySize=%d",
				req.Date, req.StartTime, req.PartySize)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, createReservation.ErrCapacityThreshold):
			h.logger.Warn("POST /reservations - Capacity threshold: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgCapacityThreshold)

		case errors.Is(err, createReservation.ErrScheduleUnavailable):
			h.logger.Error("POST /reservations - Schedule unavailable")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgScheduleUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, date=%s, time=%s, origin=%s",
		result.ID, req.Date, req.StartTime, origin)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
