// Package analytics contiene los casos de uso del dashboard de cotizaciones.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

const dashboardRecent = 5 // cotizaciones recientes en el widget del dashboard

// DashboardUseCase genera el resumen de cotizaciones visible para el actor.
//
// Fuente de datos: AnalyticsRepository (agregados) y QuotationRepository (recientes).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	quotationRepo repository.QuotationRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, quotationRepo repository.QuotationRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, quotationRepo: quotationRepo}
}

// GetStats construye el DashboardStatsDTO. Un Super Admin ve todas las cotizaciones;
// el resto solo las propias.
//
// Dos llamadas en paralelo:
//  1. GetQuotationStats        → conteos y revenue
//  2. List(limit 5)            → RecentQuotations
func (uc *DashboardUseCase) GetStats(ctx context.Context, actor entity.Actor) (*dto.DashboardStatsDTO, error) {
	ownerID := actor.UserID
	if actor.Role.CanSeeAll() {
		ownerID = ""
	}

	type statsResult struct {
		stats repository.QuotationStats
		err   error
	}
	type recentResult struct {
		list []*entity.Quotation
		err  error
	}

	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetQuotationStats(ctx, ownerID)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		list, err := uc.quotationRepo.List(ctx, repository.QuotationFilter{OwnerID: ownerID, Limit: dashboardRecent})
		recentCh <- recentResult{list, err}
	}()

	stats := <-statsCh
	recent := <-recentCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: agregados: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recientes: %w", recent.err)
	}

	out := &dto.DashboardStatsDTO{
		TotalQuotations:    stats.stats.Total,
		AcceptedQuotations: stats.stats.Accepted,
		PendingQuotations:  stats.stats.Pending,
		TotalRevenue:       stats.stats.Revenue.Round(2),
		RecentQuotations:   make([]dto.QuotationResponse, 0, len(recent.list)),
	}
	for _, q := range recent.list {
		out.RecentQuotations = append(out.RecentQuotations, *quoting.ToQuotationResponse(q))
	}
	return out, nil
}
