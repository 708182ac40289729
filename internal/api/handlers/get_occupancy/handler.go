package get_occupancy

import (
	"net/http"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
)

const msgInvalidAt = "некорректный момент среза, ожидается RFC 3339"

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venue/occupancy[?at=RFC3339]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var at *time.Time

	if rawAt := r.URL.Query().Get("at"); rawAt != "" {
		parsed, err := time.Parse(time.RFC3339, rawAt)
		if err != nil {
			h.logger.Warn("GET /venue/occupancy - Invalid at %q: %v", rawAt, err)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
		at = &parsed
	}

	result, err := h.service.Snapshot(r.Context(), at)
	if err != nil {
		h.logger.Error("GET /venue/occupancy - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
