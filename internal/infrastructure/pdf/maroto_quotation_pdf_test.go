package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
)

func TestGenerateQuotationPDF(t *testing.T) {
	q := &entity.Quotation{
		QuoteNumber:   "Q-001",
		ClientName:    "Ravi Kumar",
		CompanyName:   "Acme",
		ContactNumber: "9876543210",
		QuoteDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		LineItems: []entity.LineItem{
			{Service: "Web", Description: "Sitio", Price: decimal.NewFromInt(1000)},
			{Service: "Hosting", Description: "1 año", Price: decimal.NewFromInt(500), IsFree: true},
		},
		TaxRate: decimal.NewFromInt(18),
		Status:  entity.QuotationDraft,
	}
	q.ComputeTotals()

	b, err := pdf.NewMarotoQuotationPDF("Semixon Technologies").GenerateQuotationPDF(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
