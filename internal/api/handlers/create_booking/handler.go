package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SeatBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgInvalidParams       = "некорректные параметры бронирования"
	msgInvalidPeriod       = "некорректный период бронирования"
	msgPlanNotFound        = "план не найден"
	msgBookingNotFound     = "продлеваемое бронирование не найдено"
	msgLockerNotFound      = "шкафчик не найден"
	msgInvalidUpgrade      = "продлить можно только активную подписку этого студента"
	msgSeatUnavailable     = "место недоступно на выбранный период"
	msgPlanMismatch        = "место не подходит под выбранный план"
	msgLockerFull          = "свободных шкафчиков на период нет"
	msgInvalidCoupon       = "промокод недействителен"
	msgOfferNotApplicable  = "промокод не применим к этому студенту"
	msgAuthorizationNeeded = "немедленная активация требует подтверждения библиотекаря"
	msgConcurrencyConflict = "место только что заняли, попробуйте ещё раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Библиотекарь (если есть) проставлен middleware.OptionalLibrarian
	var authorizedBy *int64
	if librarianID, ok := middleware.GetLibrarianID(r.Context()); ok {
		authorizedBy = &librarianID
	}

	useCaseReq, err := req.ToUseCaseRequest(authorizedBy)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSeatUnavailable):
			h.logger.Warn("POST /bookings - Seat unavailable: student_id=%d, library_id=%d", req.StudentID, req.LibraryID)
			handlers.RespondConflict(w, msgSeatUnavailable)

		case errors.Is(err, createBooking.ErrLockerCapacityExceeded):
			h.logger.Warn("POST /bookings - Locker full: student_id=%d, library_id=%d", req.StudentID, req.LibraryID)
			handlers.RespondConflict(w, msgLockerFull)

		case errors.Is(err, createBooking.ErrConcurrencyConflict):
			h.logger.Warn("POST /bookings - Concurrency conflict: student_id=%d, library_id=%d", req.StudentID, req.LibraryID)
			handlers.RespondConflict(w, msgConcurrencyConflict)

		case errors.Is(err, createBooking.ErrPlanNotFound):
			h.logger.Warn("POST /bookings - Plan not found: library_id=%d, plan_id=%d", req.LibraryID, req.PlanID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, createBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings - Booking to upgrade not found: student_id=%d", req.StudentID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createBooking.ErrLockerNotFound):
			h.logger.Warn("POST /bookings - Locker not found: library_id=%d", req.LibraryID)
			handlers.RespondNotFound(w, msgLockerNotFound)

		case errors.Is(err, createBooking.ErrPlanMismatch):
			h.logger.Warn("POST /bookings - Plan mismatch: library_id=%d, plan_id=%d", req.LibraryID, req.PlanID)
			handlers.RespondUnprocessable(w, msgPlanMismatch)

		case errors.Is(err, createBooking.ErrInvalidUpgrade):
			h.logger.Warn("POST /bookings - Invalid upgrade: student_id=%d", req.StudentID)
			handlers.RespondUnprocessable(w, msgInvalidUpgrade)

		case errors.Is(err, createBooking.ErrInvalidCoupon):
			h.logger.Warn("POST /bookings - Invalid coupon: code=%q", req.OfferCode)
			handlers.RespondUnprocessable(w, msgInvalidCoupon)

		case errors.Is(err, createBooking.ErrOfferNotApplicable):
			h.logger.Warn("POST /bookings - Offer not applicable: code=%q, student_id=%d", req.OfferCode, req.StudentID)
			handlers.RespondUnprocessable(w, msgOfferNotApplicable)

		case errors.Is(err, createBooking.ErrAuthorizationRequired):
			h.logger.Warn("POST /bookings - Activation without librarian: student_id=%d", req.StudentID)
			handlers.RespondForbidden(w, msgAuthorizationNeeded)

		case errors.Is(err, createBooking.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: student_id=%d, library_id=%d, error=%v",
				req.StudentID, req.LibraryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, student_id=%d, library_id=%d",
		result.ID, req.StudentID, req.LibraryID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
