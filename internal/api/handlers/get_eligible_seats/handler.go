package get_eligible_seats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	getEligibleSeats "github.com/m04kA/SMC-SeatBookingService/internal/usecase/get_eligible_seats"
)

const (
	msgInvalidLibraryID = "некорректный ID библиотеки"
	msgInvalidPlanID    = "некорректный ID плана"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod    = "некорректный период: from должен быть раньше to"
	msgPlanNotFound     = "план не найден"
	msgSlotNotFound     = "временной слот плана не найден"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetEligibleSeatsUseCase
	logger  Logger
}

func NewHandler(useCase GetEligibleSeatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/libraries/{libraryId}/plans/{planId}/eligible-seats
// Query params: from, to (опционально, YYYY-MM-DD, to исключительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	libraryID, err := handlers.PathID(r, "libraryId")
	if err != nil {
		h.logger.Warn("GET /eligible-seats - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	planID, err := handlers.PathID(r, "planId")
	if err != nil {
		h.logger.Warn("GET /eligible-seats - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /eligible-seats - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /eligible-seats - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getEligibleSeats.Request{
		LibraryID: libraryID,
		PlanID:    planID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getEligibleSeats.ErrPlanNotFound):
			h.logger.Warn("GET /eligible-seats - Plan not found: library_id=%d, plan_id=%d", libraryID, planID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, getEligibleSeats.ErrTimeSlotNotFound):
			h.logger.Warn("GET /eligible-seats - Time slot not found: library_id=%d, plan_id=%d", libraryID, planID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, getEligibleSeats.ErrInvalidDateRange):
			h.logger.Warn("GET /eligible-seats - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getEligibleSeats.ErrInvalidInput):
			h.logger.Warn("GET /eligible-seats - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /eligible-seats - Failed to get seats: library_id=%d, plan_id=%d, error=%v",
				libraryID, planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /eligible-seats - Seats retrieved: library_id=%d, plan_id=%d, count=%d",
		libraryID, planID, len(result.Seats))
	handlers.RespondJSON(w, http.StatusOK, result)
}
