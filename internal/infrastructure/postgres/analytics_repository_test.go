package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsRevenueSQL = "COALESCE(SUM(total_payable) FILTER (WHERE status = 'accepted'), 0)"

func statsRows(total, accepted, pending int, revenue string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"total", "accepted", "pending", "revenue"}).
		AddRow(total, accepted, pending, decimal.RequireFromString(revenue))
}

// El propietario se pasa como filtro; el revenue solo suma las aceptadas.
func TestGetQuotationStats_FiltraPorPropietario(t *testing.T) {
	mock := newMock(t)
	repo := NewAnalyticsRepository(mock)
	owner := "6f1c2a7e-9a51-4a55-9d64-3b1a1c0e0a01"

	mock.ExpectQuery(sql(statsRevenueSQL)).
		WithArgs(&owner).
		WillReturnRows(statsRows(6, 2, 3, "2000.50"))

	s, err := repo.GetQuotationStats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Accepted)
	assert.Equal(t, 3, s.Pending)
	assert.Equal(t, "2000.5", s.Revenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Sin propietario (Super Admin) el parámetro va NULL y la consulta no filtra.
func TestGetQuotationStats_SinPropietario(t *testing.T) {
	mock := newMock(t)
	repo := NewAnalyticsRepository(mock)

	mock.ExpectQuery(sql("WHERE ($1::uuid IS NULL OR user_id = $1::uuid)")).
		WithArgs((*string)(nil)).
		WillReturnRows(statsRows(7, 3, 3, "7000.50"))

	s, err := repo.GetQuotationStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, s.Total)
	assert.Equal(t, "7000.5", s.Revenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
