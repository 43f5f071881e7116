package calculate_pricing

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	calculatePricing "github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
)

const (
	msgInvalidLibraryID   = "некорректный ID библиотеки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры расчёта"
	msgPlanNotFound       = "план не найден"
	msgLockerNotFound     = "шкафчик не найден"
	msgInvalidCoupon      = "промокод недействителен"
	msgOfferNotApplicable = "промокод не применим к этому студенту"
)

type Handler struct {
	useCase CalculatePricingUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePricingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/libraries/{libraryId}/pricing/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	libraryID, err := handlers.PathID(r, "libraryId")
	if err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid library ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLibraryID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(libraryID))
	if err != nil {
		switch {
		case errors.Is(err, calculatePricing.ErrPlanNotFound):
			h.logger.Warn("POST /pricing/quote - Plan not found: library_id=%d, plan_id=%d", libraryID, req.PlanID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, calculatePricing.ErrLockerNotFound):
			h.logger.Warn("POST /pricing/quote - Locker not found: library_id=%d", libraryID)
			handlers.RespondNotFound(w, msgLockerNotFound)

		case errors.Is(err, calculatePricing.ErrInvalidCoupon):
			h.logger.Warn("POST /pricing/quote - Invalid coupon: library_id=%d, code=%q", libraryID, req.OfferCode)
			handlers.RespondUnprocessable(w, msgInvalidCoupon)

		case errors.Is(err, calculatePricing.ErrOfferNotApplicable):
			h.logger.Warn("POST /pricing/quote - Offer not applicable: library_id=%d, code=%q", libraryID, req.OfferCode)
			handlers.RespondUnprocessable(w, msgOfferNotApplicable)

		case errors.Is(err, calculatePricing.ErrInvalidInput):
			h.logger.Warn("POST /pricing/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /pricing/quote - Failed to calculate: library_id=%d, plan_id=%d, error=%v",
				libraryID, req.PlanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing/quote - Quote calculated: library_id=%d, plan_id=%d, total=%s",
		libraryID, req.PlanID, result.Pricing.Total.String())
	handlers.RespondJSON(w, http.StatusOK, result)
}
