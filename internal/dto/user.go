package dto

type RegisterUserRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Currency  string `json:"currency,omitempty"`
}
