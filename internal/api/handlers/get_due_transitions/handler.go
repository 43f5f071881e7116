package get_due_transitions

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings"
)

const (
	msgInvalidLibraryID = "некорректный ID библиотеки"
	msgInvalidAt        = "некорректный момент времени, ожидается RFC3339"
)

type Handler struct {
	service BookingService
	now     func() time.Time
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
		logger:  logger,
	}
}

// Handle GET /api/v1/libraries/{libraryId}/bookings/due-transitions?at=2024-03-01T00:00:00Z
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	libraryID, err := handlers.PathID(r, "libraryId")
	if err != nil {
		h.logger.Warn("GET /libraries/{id}/bookings/due-transitions - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	at := h.now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /libraries/{id}/bookings/due-transitions - Invalid at: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
	}

	resp, err := h.service.DueTransitions(r.Context(), libraryID, at)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /libraries/{id}/bookings/due-transitions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLibraryID)

		default:
			h.logger.Error("GET /libraries/{id}/bookings/due-transitions - Failed: library_id=%d, error=%v", libraryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /libraries/{id}/bookings/due-transitions - library_id=%d, due=%d", libraryID, len(resp.Transitions))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
