package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemDTO línea de servicio de una cotización.
type LineItemDTO struct {
	Service     string          `json:"service"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsFree      bool            `json:"isFree"`
}

// QuotationRequest entrada para crear o actualizar una cotización.
// Subtotal, impuesto y total se calculan en el servidor a partir de LineItems y TaxRate.
// En actualización QuoteNumber se ignora y PDFURL solo se aplica si viene informado.
type QuotationRequest struct {
	QuoteNumber   string          `json:"quoteNumber"`
	ClientName    string          `json:"clientName"`
	CompanyName   string          `json:"companyName"`
	ContactNumber string          `json:"contactNumber"`
	Email         string          `json:"email"`
	QuoteDate     Date            `json:"quoteDate"`
	ValidUntil    Date            `json:"validUntil"`
	LineItems     []LineItemDTO   `json:"lineItems"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Status        string          `json:"status"`
	PDFURL        string          `json:"pdfUrl"`
}

// OwnerDTO propietario de una cotización (populate).
type OwnerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID            string          `json:"id"`
	User          *OwnerDTO       `json:"user,omitempty"`
	QuoteNumber   string          `json:"quoteNumber"`
	ClientName    string          `json:"clientName"`
	CompanyName   string          `json:"companyName"`
	ContactNumber string          `json:"contactNumber"`
	Email         string          `json:"email,omitempty"`
	QuoteDate     time.Time       `json:"quoteDate"`
	ValidUntil    time.Time       `json:"validUntil"`
	LineItems     []LineItemDTO   `json:"lineItems"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TotalPayable  decimal.Decimal `json:"totalPayable"`
	Status        string          `json:"status"`
	PDFURL        string          `json:"pdfUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
