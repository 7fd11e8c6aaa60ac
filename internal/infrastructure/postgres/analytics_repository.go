package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de cotizaciones.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetQuotationStats cuenta por estado y suma el total de las aceptadas en una sola pasada.
func (r *AnalyticsRepo) GetQuotationStats(ctx context.Context, ownerID string) (repository.QuotationStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                        AS total,
	    COUNT(*) FILTER (WHERE status = 'accepted')                     AS accepted,
	    COUNT(*) FILTER (WHERE status IN ('sent', 'draft'))             AS pending,
	    COALESCE(SUM(total_payable) FILTER (WHERE status = 'accepted'), 0) AS revenue
	FROM quotations
	WHERE ($1::uuid IS NULL OR user_id = $1::uuid)`

	var s repository.QuotationStats
	if err := r.q.QueryRow(ctx, query, nullIfEmpty(ownerID)).Scan(
		&s.Total,
		&s.Accepted,
		&s.Pending,
		&s.Revenue,
	); err != nil {
		return repository.QuotationStats{}, fmt.Errorf("analytics.GetQuotationStats: %w", err)
	}
	return s, nil
}
