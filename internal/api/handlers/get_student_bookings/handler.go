package get_student_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgInvalidLibraryID = "некорректный ID библиотеки"
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

// Handle GET /api/v1/students/{studentId}/bookings?libraryId=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, err := handlers.PathID(r, "studentId")
	if err != nil {
		h.logger.Warn("GET /students/{id}/bookings - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	libraryID, err := handlers.QueryID(r, "libraryId")
	if err != nil {
		h.logger.Warn("GET /students/{id}/bookings - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	req := &models.GetStudentBookingsRequest{
		StudentID: studentID,
		LibraryID: libraryID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	resp, err := h.service.GetStudentBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /students/{id}/bookings - Failed to get bookings: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/bookings - Bookings retrieved: student_id=%d, count=%d", studentID, len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
