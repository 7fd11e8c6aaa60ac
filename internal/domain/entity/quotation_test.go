package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

func TestComputeTotals_IgnoraLineasGratis(t *testing.T) {
	q := &entity.Quotation{
		TaxRate: decimal.NewFromInt(18),
		LineItems: []entity.LineItem{
			{Service: "Hosting", Description: "Plan anual", Price: decimal.RequireFromString("1000.50")},
			{Service: "Dominio", Description: "1 año", Price: decimal.NewFromInt(500), IsFree: true},
			{Service: "Soporte", Description: "Mensual", Price: decimal.RequireFromString("199.50")},
		},
	}

	q.ComputeTotals()

	assert.True(t, decimal.NewFromInt(1200).Equal(q.Subtotal), "subtotal: %s", q.Subtotal)
	assert.True(t, decimal.NewFromInt(216).Equal(q.Tax), "impuesto: %s", q.Tax)
	assert.True(t, decimal.NewFromInt(1416).Equal(q.TotalPayable), "total: %s", q.TotalPayable)
}

func TestComputeTotals_SinLineas(t *testing.T) {
	q := &entity.Quotation{TaxRate: decimal.NewFromInt(18)}
	q.ComputeTotals()
	assert.True(t, q.TotalPayable.IsZero())
}

func TestShouldNotify(t *testing.T) {
	base := entity.Quotation{Status: entity.QuotationSent, PDFURL: "https://cdn/q.pdf", Email: "c@x.com"}
	assert.True(t, base.ShouldNotify())

	draft := base
	draft.Status = entity.QuotationDraft
	assert.False(t, draft.ShouldNotify(), "draft nunca envía correo")

	noPDF := base
	noPDF.PDFURL = ""
	assert.False(t, noPDF.ShouldNotify())

	noEmail := base
	noEmail.Email = ""
	assert.False(t, noEmail.ShouldNotify())
}

func TestParseQuotationStatus(t *testing.T) {
	s, ok := entity.ParseQuotationStatus("")
	assert.True(t, ok)
	assert.Equal(t, entity.QuotationDraft, s)

	_, ok = entity.ParseQuotationStatus("archived")
	assert.False(t, ok)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, entity.RoleSuperAdmin.CanSeeAll())
	assert.True(t, entity.RoleSuperAdmin.CanManageClients())
	assert.False(t, entity.RoleEmployee.CanSeeAll())
	assert.False(t, entity.RoleEmployee.CanManageUsers())

	_, ok := entity.ParseRole("admin")
	assert.False(t, ok, "solo SuperAdmin y Employee son válidos")

	emp := entity.Actor{UserID: "u1", Role: entity.RoleEmployee}
	assert.True(t, emp.CanAccess("u1"))
	assert.False(t, emp.CanAccess("u2"))
	assert.False(t, emp.CanAccess(""))
	assert.True(t, entity.Actor{UserID: "a", Role: entity.RoleSuperAdmin}.CanAccess("u2"))
}
