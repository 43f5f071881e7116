package get_library_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

const (
	msgInvalidLibraryID = "некорректный ID библиотеки"
	msgInvalidQuery     = "некорректные параметры запроса"
	msgMissingLibrarian = "отсутствует ID библиотекаря"
	msgInvalidFilter    = "некорректный фильтр"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/libraries/{libraryId}/bookings?studentId=&seatId=&from=&to=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	libraryID, err := handlers.PathID(r, "libraryId")
	if err != nil {
		h.logger.Warn("GET /libraries/{id}/bookings - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	librarianID, ok := middleware.GetLibrarianID(r.Context())
	if !ok {
		h.logger.Warn("GET /libraries/{id}/bookings - Missing librarian ID")
		handlers.RespondUnauthorized(w, msgMissingLibrarian)
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /libraries/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	req.LibraryID = libraryID
	req.LibrarianID = librarianID

	resp, err := h.service.GetLibraryBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /libraries/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /libraries/{id}/bookings - Failed to get bookings: library_id=%d, error=%v", libraryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /libraries/{id}/bookings - Bookings retrieved: library_id=%d, count=%d", libraryID, len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func parseQuery(r *http.Request) (*models.GetLibraryBookingsRequest, error) {
	req := &models.GetLibraryBookingsRequest{}

	var err error
	if req.StudentID, err = handlers.QueryID(r, "studentId"); err != nil {
		return nil, err
	}
	if req.SeatID, err = handlers.QueryID(r, "seatId"); err != nil {
		return nil, err
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	if !from.IsZero() {
		req.From = &from
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}
	if !to.IsZero() {
		req.To = &to
	}

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if raw := q.Get("includeInactive"); raw != "" {
		req.IncludeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
	}

	return req, nil
}
