package configure_seats

// Request модель запроса на массовое создание мест
type Request struct {
	LibraryID   int64
	LibrarianID int64

	// Seats список номеров, например "1-50, 55, 60-62"
	Seats string
	Mode  string // FIXED, FLOAT или SPECIAL

	// AllowedPlanIDs обязателен для SPECIAL, запрещён для остальных режимов
	AllowedPlanIDs []int64

	LockerAutoInclude bool
	LockerID          *int64

	// Inactive создать места выключенными (ремонт, резерв)
	Inactive bool
}

// Response модель ответа
type Response struct {
	LibraryID int64     `json:"libraryId"`
	Created   []SeatDTO `json:"created"`
	// Skipped номера, которые уже существовали в библиотеке
	Skipped []int `json:"skipped"`
}

// SeatDTO созданное место
type SeatDTO struct {
	ID                int64   `json:"id"`
	SeatNumber        int     `json:"seatNumber"`
	Mode              string  `json:"mode"`
	IsActive          bool    `json:"isActive"`
	AllowedPlanIDs    []int64 `json:"allowedPlanIds,omitempty"`
	LockerAutoInclude bool    `json:"lockerAutoInclude"`
	LockerID          *int64  `json:"lockerId,omitempty"`
}
