package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// QuotationStats resultado crudo de la agregación de cotizaciones.
// Lo produce la DB; el use case lo convierte en DTO.
type QuotationStats struct {
	Total    int
	Accepted int
	Pending  int             // sent + draft
	Revenue  decimal.Decimal // suma de total_payable de las aceptadas
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetQuotationStats agrega las cotizaciones del propietario (ownerID vacío = todas).
	// Usa COALESCE para devolver cero si no hay cotizaciones.
	GetQuotationStats(ctx context.Context, ownerID string) (QuotationStats, error)
}
