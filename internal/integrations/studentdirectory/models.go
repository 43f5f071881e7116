package studentdirectory

// Student карточка студента из справочника библиотеки
type Student struct {
	ID        int64   `json:"id"`
	LibraryID int64   `json:"library_id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`

	// IsNewUser true, пока у студента нет ни одной подписки
	IsNewUser bool `json:"is_new_user"`
	// UsedOfferIDs предложения, которые студент уже применял
	UsedOfferIDs []int64 `json:"used_offer_ids"`
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
