package get_day_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
	"github.com/avdeev-m/TableReservationService/internal/domain"
	getDaySlots "github.com/avdeev-m/TableReservationService/internal/usecase/get_day_slots"
)

const (
	msgMissingDate         = "параметр date обязателен"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgScheduleUnavailable = "расписание заведения недоступно"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venue/day-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /venue/day-slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /venue/day-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /venue/day-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDaySlots.ErrScheduleUnavailable):
			h.logger.Error("GET /venue/day-slots - Schedule unavailable")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgScheduleUnavailable)

		default:
			h.logger.Error("GET /venue/day-slots - Failed: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
