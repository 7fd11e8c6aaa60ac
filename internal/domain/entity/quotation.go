package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus estado del ciclo de vida de una cotización.
type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
	QuotationExpired  QuotationStatus = "expired"
)

// ParseQuotationStatus valida el estado recibido. Vacío equivale a draft.
func ParseQuotationStatus(s string) (QuotationStatus, bool) {
	switch QuotationStatus(s) {
	case "":
		return QuotationDraft, true
	case QuotationDraft, QuotationSent, QuotationAccepted, QuotationRejected, QuotationExpired:
		return QuotationStatus(s), true
	default:
		return "", false
	}
}

// Pending cuenta como pendiente en el dashboard (sent o draft).
func (s QuotationStatus) Pending() bool {
	return s == QuotationSent || s == QuotationDraft
}

// LineItem línea de servicio de la cotización. Las líneas gratuitas no suman al subtotal.
type LineItem struct {
	Service     string          `json:"service"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsFree      bool            `json:"isFree"`
}

// Quotation cotización emitida por un usuario. Los datos del cliente se copian
// (no es una FK a clients) para que la cotización no cambie si el cliente se edita.
type Quotation struct {
	ID            string
	UserID        string
	QuoteNumber   string
	ClientName    string
	CompanyName   string
	ContactNumber string
	Email         string
	QuoteDate     time.Time
	ValidUntil    time.Time
	LineItems     []LineItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje, ej. 18
	TotalPayable  decimal.Decimal
	Status        QuotationStatus
	PDFURL        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Solo lectura: datos del propietario (JOIN con users).
	OwnerName  string
	OwnerEmail string
}

// ComputeTotals recalcula subtotal, impuesto y total a partir de las líneas y la tasa.
func (q *Quotation) ComputeTotals() {
	subtotal := decimal.Zero
	for _, item := range q.LineItems {
		if item.IsFree {
			continue
		}
		subtotal = subtotal.Add(item.Price)
	}
	q.Subtotal = subtotal.Round(2)
	q.Tax = subtotal.Mul(q.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	q.TotalPayable = q.Subtotal.Add(q.Tax)
}

// ShouldNotify indica si la cotización debe enviarse por correo al cliente.
func (q *Quotation) ShouldNotify() bool {
	return q.Status == QuotationSent && q.PDFURL != "" && q.Email != ""
}
