package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

var (
	// ErrInvalidPeriod возвращается, когда from не раньше to
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	LibrarianID        int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	LibrarianID int64  `json:"-"`
	Status      string `json:"status"`
}

// GetStudentBookingsRequest запрос на получение подписок студента
type GetStudentBookingsRequest struct {
	StudentID int64   `json:"studentId"`
	LibraryID *int64  `json:"libraryId,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// GetLibraryBookingsRequest запрос на получение бронирований библиотеки
type GetLibraryBookingsRequest struct {
	LibrarianID     int64      `json:"-"`
	LibraryID       int64      `json:"libraryId"`
	StudentID       *int64     `json:"studentId,omitempty"`
	SeatID          *int64     `json:"seatId,omitempty"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetLibraryBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		LibraryID:       r.LibraryID,
		StudentID:       r.StudentID,
		SeatID:          r.SeatID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	StudentID   int64           `json:"studentId"`
	LibraryID   int64           `json:"libraryId"`
	PlanID      int64           `json:"planId"`
	PlanType    string          `json:"planType"`
	SlotPools   []string        `json:"slotPools"`
	SeatID      *int64          `json:"seatId,omitempty"`
	LockerID    *int64          `json:"lockerId,omitempty"`
	ValidFrom   string          `json:"validFrom"` // "2024-03-01"
	ValidTo     string          `json:"validTo"`   // исключительная граница
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`

	OfferID        *int64  `json:"offerId,omitempty"`
	UpgradedFromID *int64  `json:"upgradedFromId,omitempty"`
	CreatedBy      *int64  `json:"createdBy,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DueTransition бронирование, которое пора перевести в следующий статус
type DueTransition struct {
	BookingID int64  `json:"bookingId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// DueTransitionsResponse ответ со списком назревших переходов
type DueTransitionsResponse struct {
	Transitions []DueTransition `json:"transitions"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference.String(),
		StudentID:          b.StudentID,
		LibraryID:          b.LibraryID,
		PlanID:             b.PlanID,
		PlanType:           string(b.PlanType),
		SlotPools:          b.SlotPools.Strings(),
		SeatID:             b.SeatID,
		LockerID:           b.LockerID,
		ValidFrom:          b.ValidFrom.Format(domain.DateFormat),
		ValidTo:            b.ValidTo.Format(domain.DateFormat),
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		OfferID:            b.OfferID,
		UpgradedFromID:     b.UpgradedFromID,
		CreatedBy:          b.CreatedBy,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
