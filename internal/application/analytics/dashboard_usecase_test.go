package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/testutil"
)

func seed(t *testing.T, repo *testutil.QuotationRepo, owner string, status entity.QuotationStatus, total string, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		num := repo.Len() + 1
		require.NoError(t, repo.Create(context.Background(), &entity.Quotation{
			ID:           fmt.Sprintf("q%d", num),
			UserID:       owner,
			QuoteNumber:  fmt.Sprintf("Q-%03d", num),
			Status:       status,
			TotalPayable: decimal.RequireFromString(total),
			CreatedAt:    base.Add(time.Duration(num) * time.Hour),
		}))
	}
}

func TestGetStats(t *testing.T) {
	users := testutil.NewUserRepo(&entity.User{ID: "emp1", Name: "Emp Uno"})
	repo := testutil.NewQuotationRepo(users)
	seed(t, repo, "emp1", entity.QuotationAccepted, "1000.25", 2)
	seed(t, repo, "emp1", entity.QuotationDraft, "999", 2)
	seed(t, repo, "emp1", entity.QuotationSent, "50", 1)
	seed(t, repo, "emp1", entity.QuotationRejected, "70", 1)
	seed(t, repo, "emp2", entity.QuotationAccepted, "5000", 1)

	uc := analytics.NewDashboardUseCase(repo, repo)

	own, err := uc.GetStats(context.Background(), entity.Actor{UserID: "emp1", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, 6, own.TotalQuotations)
	assert.Equal(t, 2, own.AcceptedQuotations)
	assert.Equal(t, 3, own.PendingQuotations)
	assert.True(t, decimal.RequireFromString("2000.5").Equal(own.TotalRevenue))
	require.Len(t, own.RecentQuotations, 5)
	assert.Equal(t, "Q-006", own.RecentQuotations[0].QuoteNumber)
	require.NotNil(t, own.RecentQuotations[0].User)
	assert.Equal(t, "Emp Uno", own.RecentQuotations[0].User.Name)

	all, err := uc.GetStats(context.Background(), entity.Actor{UserID: "root", Role: entity.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, 7, all.TotalQuotations)
	assert.True(t, decimal.RequireFromString("7000.5").Equal(all.TotalRevenue))
	assert.Equal(t, "Q-007", all.RecentQuotations[0].QuoteNumber)
}

func TestGetStats_SinCotizaciones(t *testing.T) {
	repo := testutil.NewQuotationRepo(nil)
	res, err := analytics.NewDashboardUseCase(repo, repo).GetStats(context.Background(), entity.Actor{UserID: "x", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.Zero(t, res.TotalQuotations)
	assert.True(t, res.TotalRevenue.IsZero())
	assert.NotNil(t, res.RecentQuotations)
}
