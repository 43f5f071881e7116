package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	StudentID int64  // ID студента из справочника
	LibraryID int64  // ID библиотеки
	PlanID    int64  // ID плана подписки
	SeatID    *int64 // обязателен для FIXED плана
	LockerID  *int64 // опционально; для места с lockerAutoInclude подставляется шкафчик места

	StartDate       time.Time // нулевое значение = сегодня; игнорируется при продлении
	MonthsRequested int       // 0 = domain.DefaultMonthsRequested
	OfferCode       string

	// UpgradeFromID продлеваемое ACTIVE бронирование. Новое начинается с его validTo.
	UpgradeFromID *int64

	// ActivateImmediately создать сразу ACTIVE (оформление на месте), иначе PENDING
	ActivateImmediately bool
	// AuthorizedBy библиотекарь, подтвердивший операцию внешним PIN
	AuthorizedBy *int64

	Notes *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64           `json:"id"`
	Reference      string          `json:"reference"`
	StudentID      int64           `json:"studentId"`
	LibraryID      int64           `json:"libraryId"`
	PlanID         int64           `json:"planId"`
	PlanType       string          `json:"planType"`
	SeatID         *int64          `json:"seatId,omitempty"`
	LockerID       *int64          `json:"lockerId,omitempty"`
	ValidFrom      string          `json:"validFrom"`
	ValidTo        string          `json:"validTo"`
	Status         string          `json:"status"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	OfferID        *int64          `json:"offerId,omitempty"`
	UpgradedFromID *int64          `json:"upgradedFromId,omitempty"`
	CreatedBy      *int64          `json:"createdBy,omitempty"`
	Notes          *string         `json:"notes,omitempty"`

	Pricing domain.PricingBreakdown `json:"pricing"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
