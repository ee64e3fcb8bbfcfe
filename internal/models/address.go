package models

// Address is a saved shipping address. Exactly one address in a user's
// book may be the default at any time.
type Address struct {
	ID        string `json:"id" validate:"omitempty"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"omitempty"`
	IsDefault bool   `json:"is_default"`
}
