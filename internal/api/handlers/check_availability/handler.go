package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
	"github.com/avdeev-m/TableReservationService/internal/api/middleware"
	"github.com/avdeev-m/TableReservationService/internal/domain"
	checkAvailability "github.com/avdeev-m/TableReservationService/internal/usecase/check_availability"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

const (
	msgMissingParams       = "параметры date, time и partySize обязательны"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidPartySize    = "некорректный размер группы"
	msgInvalidDuration     = "некорректная длительность"
	msgInvalidStaffID      = "некорректный заголовок X-Staff-ID"
	msgScheduleUnavailable = "расписание заведения недоступно"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venue/availability?date=YYYY-MM-DD&time=HH:MM&partySize=N[&duration=M]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawDate := query.Get("date")
	rawTime := query.Get("time")
	rawPartySize := query.Get("partySize")

	if rawDate == "" || rawTime == "" || rawPartySize == "" {
		h.logger.Warn("GET /venue/availability - Missing required parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /venue/availability - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		h.logger.Warn("GET /venue/availability - Invalid time %q: %v", rawTime, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	partySize, err := strconv.Atoi(rawPartySize)
	if err != nil || partySize <= 0 {
		h.logger.Warn("GET /venue/availability - Invalid partySize %q", rawPartySize)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	req := &checkAvailability.Request{
		Date:      date,
		StartTime: startTime,
		PartySize: partySize,
		Origin:    domain.OriginCustomer,
	}

	if rawDuration := query.Get("duration"); rawDuration != "" {
		duration, err := strconv.Atoi(rawDuration)
		if err != nil || duration <= 0 {
			h.logger.Warn("GET /venue/availability - Invalid duration %q", rawDuration)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = &duration
	}

	// Валидный заголовок персонала переводит запрос в административный
	// режим без клиентских ограничений
	staffID, err := middleware.StaffID(r)
	if err != nil {
		h.logger.Warn("GET /venue/availability - Invalid staff header: %v", err)
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidStaffID)
		return
	}
	if staffID != 0 {
		req.Origin = domain.OriginAdministrative
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venue/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, checkAvailability.ErrScheduleUnavailable):
			h.logger.Error("GET /venue/availability - Schedule unavailable")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgScheduleUnavailable)

		default:
			h.logger.Error("GET /venue/availability - Failed: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
