package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/quotations/stats.
// Calculada sobre las cotizaciones visibles para el usuario (propias, o todas si es Super Admin).
type DashboardStatsDTO struct {
	TotalQuotations    int                 `json:"totalQuotations"`
	AcceptedQuotations int                 `json:"acceptedQuotations"`
	PendingQuotations  int                 `json:"pendingQuotations"` // sent + draft
	TotalRevenue       decimal.Decimal     `json:"totalRevenue"`      // suma de totalPayable de las aceptadas
	RecentQuotations   []QuotationResponse `json:"recentQuotations"`  // 5 más recientes
}
