package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// QuotationFilter restringe los listados. OwnerID vacío = todas las cotizaciones.
type QuotationFilter struct {
	OwnerID string
	Limit   int // 0 = sin límite
}

// QuotationRepository define el puerto de persistencia para Quotation.
// Create devuelve domain.ErrDuplicate si el número de cotización ya existe.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	// List ordena por fecha de creación descendente e incluye nombre/email del propietario.
	List(ctx context.Context, f QuotationFilter) ([]*entity.Quotation, error)
	Update(ctx context.Context, q *entity.Quotation) error
	Delete(ctx context.Context, id string) error
}
