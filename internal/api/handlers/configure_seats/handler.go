package configure_seats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBookingService/internal/api/middleware"
	configureSeats "github.com/m04kA/SMC-SeatBookingService/internal/usecase/configure_seats"
)

const (
	msgInvalidLibraryID   = "некорректный ID библиотеки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingLibrarian   = "отсутствует ID библиотекаря"
	msgInvalidSeatRange   = "некорректный список номеров мест"
	msgTooManySeats       = "слишком много мест в одном запросе"
	msgPlanNotFound       = "план не найден"
	msgPlanMismatch       = "SPECIAL места доступны только для FIXED планов"
	msgLockerNotFound     = "шкафчик не найден"
	msgSeatNumbersTaken   = "номера мест заняты параллельным запросом"
	msgInvalidParams      = "некорректные параметры мест"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/libraries/{libraryId}/seats/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	libraryID, err := handlers.PathID(r, "libraryId")
	if err != nil {
		h.logger.Warn("POST /libraries/{id}/seats/bulk - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	librarianID, ok := middleware.GetLibrarianID(r.Context())
	if !ok {
		h.logger.Warn("POST /libraries/{id}/seats/bulk - Missing librarian ID")
		handlers.RespondUnauthorized(w, msgMissingLibrarian)
		return
	}

	var req ConfigureSeatsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /libraries/{id}/seats/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(libraryID, librarianID))
	if err != nil {
		switch {
		case errors.Is(err, configureSeats.ErrInvalidSeatRange):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Invalid seat range: %q", req.Seats)
			handlers.RespondBadRequest(w, msgInvalidSeatRange)

		case errors.Is(err, configureSeats.ErrTooManySeats):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Too many seats: %q", req.Seats)
			handlers.RespondBadRequest(w, msgTooManySeats)

		case errors.Is(err, configureSeats.ErrPlanNotFound):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Plan not found: %v", err)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, configureSeats.ErrLockerNotFound):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Locker not found: %v", err)
			handlers.RespondNotFound(w, msgLockerNotFound)

		case errors.Is(err, configureSeats.ErrPlanMismatch):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Plan mismatch: %v", err)
			handlers.RespondUnprocessable(w, msgPlanMismatch)

		case errors.Is(err, configureSeats.ErrSeatNumbersTaken):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Seat numbers taken: library_id=%d", libraryID)
			handlers.RespondConflict(w, msgSeatNumbersTaken)

		case errors.Is(err, configureSeats.ErrInvalidInput):
			h.logger.Warn("POST /libraries/{id}/seats/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /libraries/{id}/seats/bulk - Failed to configure seats: library_id=%d, error=%v", libraryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /libraries/{id}/seats/bulk - Seats configured: library_id=%d, created=%d, skipped=%d",
		libraryID, len(resp.Created), len(resp.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
