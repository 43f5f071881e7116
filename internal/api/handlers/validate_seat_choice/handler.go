package validate_seat_choice

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	validateSeatChoice "github.com/m04kA/SMC-SeatBookingService/internal/usecase/validate_seat_choice"
)

const (
	msgInvalidLibraryID = "некорректный ID библиотеки"
	msgInvalidPlanID    = "некорректный ID плана"
	msgInvalidSeatID    = "некорректный ID места"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod    = "некорректный период: from должен быть раньше to"
	msgPlanNotFound     = "план не найден"
	msgSeatUnavailable  = "место недоступно на выбранный период"
	msgPlanMismatch     = "место не подходит под выбранный план"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	useCase ValidateSeatChoiceUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSeatChoiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/libraries/{libraryId}/plans/{planId}/seats/{seatId}/validate
// Query params: from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	libraryID, err := handlers.PathID(r, "libraryId")
	if err != nil {
		h.logger.Warn("GET /seats/{id}/validate - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	planID, err := handlers.PathID(r, "planId")
	if err != nil {
		h.logger.Warn("GET /seats/{id}/validate - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	seatID, err := handlers.PathID(r, "seatId")
	if err != nil {
		h.logger.Warn("GET /seats/{id}/validate - Invalid seat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSeatID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validateSeatChoice.Request{
		LibraryID: libraryID,
		PlanID:    planID,
		SeatID:    seatID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, validateSeatChoice.ErrPlanNotFound):
			h.logger.Warn("GET /seats/{id}/validate - Plan not found: library_id=%d, plan_id=%d", libraryID, planID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, validateSeatChoice.ErrPlanMismatch):
			h.logger.Warn("GET /seats/{id}/validate - Plan mismatch: seat_id=%d, plan_id=%d", seatID, planID)
			handlers.RespondUnprocessable(w, msgPlanMismatch)

		case errors.Is(err, validateSeatChoice.ErrSeatUnavailable):
			h.logger.Warn("GET /seats/{id}/validate - Seat unavailable: seat_id=%d, plan_id=%d", seatID, planID)
			handlers.RespondConflict(w, msgSeatUnavailable)

		case errors.Is(err, validateSeatChoice.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, validateSeatChoice.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /seats/{id}/validate - Failed to validate seat: seat_id=%d, error=%v", seatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /seats/{id}/validate - Seat available: seat_id=%d, plan_id=%d", seatID, planID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
