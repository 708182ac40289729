package get_day_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/internal/service/reservations"
	"github.com/avdeev-m/TableReservationService/internal/service/reservations/models"
)

const (
	msgMissingDate   = "параметр date обязателен"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?date=YYYY-MM-DD[&status=confirmed][&includeInactive=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawDate := query.Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /reservations - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetDayReservationsRequest{
		Date:            date,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		req.Status = &rawStatus
	}

	result, err := h.service.GetDayReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /reservations - Failed: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
