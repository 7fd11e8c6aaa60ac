package dto

import "time"

// ClientRequest entrada para crear o actualizar un cliente.
// En actualización, los campos vacíos conservan el valor actual.
type ClientRequest struct {
	Name          string `json:"name"`
	CompanyName   string `json:"companyName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	TaxID         string `json:"taxId"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user,omitempty"`
	Name          string    `json:"name"`
	CompanyName   string    `json:"companyName"`
	Email         string    `json:"email,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Address       string    `json:"address,omitempty"`
	TaxID         string    `json:"taxId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
