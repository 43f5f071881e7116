package get_eligible_seats

import "time"

// Request модель запроса на получение доступных мест
type Request struct {
	LibraryID int64
	PlanID    int64
	From      time.Time // включительно; нулевое значение = начало текущего дня
	To        time.Time // исключительно; нулевое значение = From + 1 месяц
}

// Response модель ответа со списком доступных мест
type Response struct {
	LibraryID int64     `json:"libraryId"`
	PlanID    int64     `json:"planId"`
	PlanType  string    `json:"planType"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Seats     []SeatDTO `json:"seats"`
}

// SeatDTO место в листинге
type SeatDTO struct {
	ID                int64  `json:"id"`
	SeatNumber        int    `json:"seatNumber"`
	Mode              string `json:"mode"`
	LockerAutoInclude bool   `json:"lockerAutoInclude"`
	LockerID          *int64 `json:"lockerId,omitempty"`
}
