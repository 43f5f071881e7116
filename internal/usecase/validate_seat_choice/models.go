package validate_seat_choice

import "time"

// Request модель запроса на проверку выбранного места
type Request struct {
	LibraryID int64
	PlanID    int64
	SeatID    int64
	From      time.Time // включительно; нулевое значение = начало текущего дня
	To        time.Time // исключительно; нулевое значение = From + 1 месяц
}

// Response модель ответа: место можно бронировать
type Response struct {
	SeatID     int64  `json:"seatId"`
	SeatNumber int    `json:"seatNumber"`
	PlanID     int64  `json:"planId"`
	From       string `json:"from"`
	To         string `json:"to"`
	Available  bool   `json:"available"`
}
