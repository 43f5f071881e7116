// Package allocation решает, какие места можно выдать под план на период.
// Пакет не ходит в хранилище: инвентарь и пересекающиеся бронирования передаёт вызывающий.
package allocation

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

// Request входные данные для подбора мест
type Request struct {
	Plan     *domain.Plan
	TimeSlot *domain.TimeSlot // обязателен для FIXED плана
	Range    domain.DateRange

	// Seats инвентарь библиотеки плана
	Seats []*domain.Seat
	// Bookings бронирования библиотеки, пересекающиеся с Range.
	// Неактивные и непересекающиеся отфильтровываются здесь же.
	Bookings []*domain.Booking
}

// EligibleSeats возвращает места, доступные под план на период, по возрастанию номера.
//
// FIXED план: места FIXED и SPECIAL (с планом в allow-list) без пересекающихся
// PENDING/ACTIVE бронирований. Нулевой временной слот не даёт ни одного места.
//
// FLOAT план: ёмкость = число активных FLOAT мест, занятость = число FLOAT бронирований
// с пересекающимися пулами. Возвращается не больше capacity-used незакреплённых мест.
func EligibleSeats(req Request) ([]*domain.Seat, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var eligible []*domain.Seat
	if req.Plan.IsFixed() {
		eligible = fixedEligible(req)
	} else {
		eligible = floatEligible(req)
	}

	sortBySeatNumber(eligible)
	return eligible, nil
}

// ValidateSeatChoice повторяет проверку EligibleSeats для одного места.
// Любая неоднозначность даёт ErrSeatUnavailable. Несовпадение режима места и плана
// дополнительно оборачивает ErrPlanMismatch.
func ValidateSeatChoice(seatID int64, req Request) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	seat := findSeat(req.Seats, seatID)
	if seat == nil {
		return fmt.Errorf("%w: seat id=%d not found in library id=%d", ErrSeatUnavailable, seatID, req.Plan.LibraryID)
	}
	if seat.LibraryID != req.Plan.LibraryID {
		return fmt.Errorf("%w: seat id=%d belongs to another library", ErrSeatUnavailable, seatID)
	}
	if !seat.IsActive {
		return fmt.Errorf("%w: seat id=%d is inactive", ErrSeatUnavailable, seatID)
	}
	if !seatServesPlan(seat, req.Plan) {
		return fmt.Errorf("%w: %w: seat id=%d mode=%s, plan id=%d type=%s",
			ErrSeatUnavailable, ErrPlanMismatch, seatID, seat.Mode, req.Plan.ID, req.Plan.PlanType)
	}

	if req.Plan.IsFixed() {
		if req.TimeSlot == nil || req.TimeSlot.IsZeroLength() {
			return fmt.Errorf("%w: plan id=%d has a zero-length time slot", ErrSeatUnavailable, req.Plan.ID)
		}
		if hasOverlap(seat.ID, req.Bookings, req.Range) {
			return fmt.Errorf("%w: seat id=%d is booked within %s", ErrSeatUnavailable, seatID, req.Range)
		}
		return nil
	}

	pools := req.Plan.SlotPools
	capacity := len(floatInventory(req.Seats, req.Plan.LibraryID))
	used, pinned := floatUsage(req.Bookings, req.Range, pools)
	if pinned[seat.ID] {
		return fmt.Errorf("%w: float seat id=%d is taken within %s", ErrSeatUnavailable, seatID, req.Range)
	}
	if used >= capacity {
		return fmt.Errorf("%w: float pool exhausted (%d/%d) within %s", ErrSeatUnavailable, used, capacity, req.Range)
	}
	return nil
}

// CheckLockerCapacity проверяет, что для ещё одного бронирования найдётся шкафчик
func CheckLockerCapacity(locker *domain.Locker, bookings []*domain.Booking, dateRange domain.DateRange) error {
	if locker == nil {
		return fmt.Errorf("%w: locker is required", ErrInvalidRequest)
	}

	occupied := 0
	for _, b := range bookings {
		if b.LockerID == nil || *b.LockerID != locker.ID {
			continue
		}
		if b.IsOccupying() && b.Range().Overlaps(dateRange) {
			occupied++
		}
	}

	if !locker.HasCapacity(occupied) {
		return fmt.Errorf("%w: locker id=%d %d/%d occupied within %s",
			ErrLockerCapacityExceeded, locker.ID, occupied, locker.NumberOfLockers, dateRange)
	}
	return nil
}

func validateRequest(req Request) error {
	if req.Plan == nil {
		return fmt.Errorf("%w: plan is required", ErrInvalidRequest)
	}
	if err := req.Range.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.Plan.IsFixed() && req.TimeSlot != nil &&
		(req.Plan.TimeSlotID == nil || *req.Plan.TimeSlotID != req.TimeSlot.ID) {
		return fmt.Errorf("%w: time slot id=%d is not the plan's slot", ErrInvalidRequest, req.TimeSlot.ID)
	}
	if !req.Plan.IsFixed() && !req.Plan.IsFloat() {
		return fmt.Errorf("%w: unknown plan type %q", ErrInvalidRequest, req.Plan.PlanType)
	}
	return nil
}

func fixedEligible(req Request) []*domain.Seat {
	if req.TimeSlot == nil || req.TimeSlot.IsZeroLength() {
		return nil
	}

	eligible := make([]*domain.Seat, 0, len(req.Seats))
	for _, seat := range req.Seats {
		if !seat.IsActive || seat.LibraryID != req.Plan.LibraryID || !seatServesPlan(seat, req.Plan) {
			continue
		}
		if hasOverlap(seat.ID, req.Bookings, req.Range) {
			continue
		}
		eligible = append(eligible, seat)
	}
	return eligible
}

func floatEligible(req Request) []*domain.Seat {
	inventory := floatInventory(req.Seats, req.Plan.LibraryID)
	used, pinned := floatUsage(req.Bookings, req.Range, req.Plan.SlotPools)

	available := len(inventory) - used
	if available <= 0 {
		return nil
	}

	sortBySeatNumber(inventory)
	eligible := make([]*domain.Seat, 0, available)
	for _, seat := range inventory {
		if len(eligible) == available {
			break
		}
		if pinned[seat.ID] {
			continue
		}
		eligible = append(eligible, seat)
	}
	return eligible
}

// seatServesPlan сопоставляет режим места и тип плана
func seatServesPlan(seat *domain.Seat, plan *domain.Plan) bool {
	switch seat.Mode {
	case domain.SeatModeFixed:
		return plan.IsFixed()
	case domain.SeatModeSpecial:
		return plan.IsFixed() && seat.AllowsPlan(plan.ID)
	case domain.SeatModeFloat:
		return plan.IsFloat()
	default:
		return false
	}
}

// hasOverlap ищет PENDING/ACTIVE бронирование места, пересекающееся с периодом
func hasOverlap(seatID int64, bookings []*domain.Booking, dateRange domain.DateRange) bool {
	for _, b := range bookings {
		if b.SeatID == nil || *b.SeatID != seatID {
			continue
		}
		if b.IsOccupying() && b.Range().Overlaps(dateRange) {
			return true
		}
	}
	return false
}

func floatInventory(seats []*domain.Seat, libraryID int64) []*domain.Seat {
	inventory := make([]*domain.Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.IsActive && seat.LibraryID == libraryID && seat.Mode == domain.SeatModeFloat {
			inventory = append(inventory, seat)
		}
	}
	return inventory
}

// floatUsage считает FLOAT бронирования с пересекающимися пулами и закреплённые ими места
func floatUsage(bookings []*domain.Booking, dateRange domain.DateRange, pools domain.SlotPools) (int, map[int64]bool) {
	used := 0
	pinned := make(map[int64]bool)
	for _, b := range bookings {
		if b.PlanType != domain.PlanTypeFloat || !b.IsOccupying() {
			continue
		}
		if !b.Range().Overlaps(dateRange) || !b.SlotPools.Intersects(pools) {
			continue
		}
		used++
		if b.SeatID != nil {
			pinned[*b.SeatID] = true
		}
	}
	return used, pinned
}

func findSeat(seats []*domain.Seat, id int64) *domain.Seat {
	for _, seat := range seats {
		if seat.ID == id {
			return seat
		}
	}
	return nil
}

func sortBySeatNumber(seats []*domain.Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		return seats[i].SeatNumber < seats[j].SeatNumber
	})
}
