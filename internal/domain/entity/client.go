package entity

import "time"

// Client representa un cliente al que se le emiten cotizaciones.
// Pertenece al usuario que lo creó (directamente o al crear una cotización).
type Client struct {
	ID            string
	UserID        string
	Name          string
	CompanyName   string
	Email         string
	ContactNumber string
	Address       string
	TaxID         string // GSTIN / NIT
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
