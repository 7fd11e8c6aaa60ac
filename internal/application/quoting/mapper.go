package quoting

import (
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ToQuotationResponse convierte la entidad al DTO de salida (con el propietario si se conoce).
func ToQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	if q == nil {
		return nil
	}
	items := make([]dto.LineItemDTO, 0, len(q.LineItems))
	for _, it := range q.LineItems {
		items = append(items, dto.LineItemDTO{
			Service:     it.Service,
			Description: it.Description,
			Price:       it.Price,
			IsFree:      it.IsFree,
		})
	}
	out := &dto.QuotationResponse{
		ID:            q.ID,
		QuoteNumber:   q.QuoteNumber,
		ClientName:    q.ClientName,
		CompanyName:   q.CompanyName,
		ContactNumber: q.ContactNumber,
		Email:         q.Email,
		QuoteDate:     q.QuoteDate,
		ValidUntil:    q.ValidUntil,
		LineItems:     items,
		Subtotal:      q.Subtotal,
		Tax:           q.Tax,
		TaxRate:       q.TaxRate,
		TotalPayable:  q.TotalPayable,
		Status:        string(q.Status),
		PDFURL:        q.PDFURL,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.UserID != "" {
		out.User = &dto.OwnerDTO{ID: q.UserID, Name: q.OwnerName, Email: q.OwnerEmail}
	}
	return out
}

// ToClientResponse convierte la entidad al DTO de salida.
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		Name:          c.Name,
		CompanyName:   c.CompanyName,
		Email:         c.Email,
		ContactNumber: c.ContactNumber,
		Address:       c.Address,
		TaxID:         c.TaxID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toLineItems(in []dto.LineItemDTO) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.LineItem{
			Service:     it.Service,
			Description: it.Description,
			Price:       it.Price,
			IsFree:      it.IsFree,
		})
	}
	return items
}
