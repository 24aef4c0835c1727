package domain

// TravelerData is one traveler's identity and document record.
type TravelerData struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Nationality     string `json:"nationality" validate:"required"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required"`
	PassportNumber  string `json:"passportNumber" validate:"required"`
	PassportExpiry  string `json:"passportExpiry" validate:"required"`
	SpecialRequests string `json:"specialRequests"`
}
