package quoting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/testutil"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const clientID = "3d8f0c8e-2b1f-4f6e-9a0d-7c1e5b2a9f10"

func TestClient_CreateRequierePrivilegio(t *testing.T) {
	uc := quoting.NewClientUseCase(testutil.NewClientRepo(), logger.Nop())

	_, err := uc.Create(context.Background(), employee, dto.ClientRequest{Name: "Ana", CompanyName: "Acme"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(context.Background(), admin, dto.ClientRequest{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := uc.Create(context.Background(), admin, dto.ClientRequest{Name: "Ana", CompanyName: "Acme", Email: "ANA@acme.in"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.UserID)
	assert.Equal(t, "ana@acme.in", res.Email)
}

func TestClient_ListAlcanceYOrden(t *testing.T) {
	repo := testutil.NewClientRepo(
		&entity.Client{ID: "c1", UserID: "emp1", Name: "zeta", CompanyName: "Z"},
		&entity.Client{ID: "c2", UserID: "emp2", Name: "Beta", CompanyName: "B"},
		&entity.Client{ID: "c3", UserID: "emp1", Name: "Alfa", CompanyName: "A"},
	)
	uc := quoting.NewClientUseCase(repo, logger.Nop())

	own, err := uc.List(context.Background(), employee)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "Alfa", own[0].Name)
	assert.Equal(t, "zeta", own[1].Name)

	all, err := uc.List(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Beta", all[1].Name)
}

func TestClient_UpdateConservaCamposVacios(t *testing.T) {
	repo := testutil.NewClientRepo(&entity.Client{
		ID: clientID, UserID: "emp1", Name: "Ana", CompanyName: "Acme", Email: "ana@acme.in", Address: "Calle 1",
	})
	uc := quoting.NewClientUseCase(repo, logger.Nop())

	res, err := uc.Update(context.Background(), admin, clientID, dto.ClientRequest{CompanyName: "Acme Ltd", TaxID: "29ABCDE1234F1Z5"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", res.Name)
	assert.Equal(t, "Acme Ltd", res.CompanyName)
	assert.Equal(t, "ana@acme.in", res.Email)
	assert.Equal(t, "Calle 1", res.Address)
	assert.Equal(t, "29ABCDE1234F1Z5", res.TaxID)

	_, err = uc.Update(context.Background(), admin, "0f9b7c3a-1111-4c2d-8e5f-000000000000", dto.ClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un ID que no es UUID se trata como inexistente, sin llegar al repositorio.
func TestClient_IDNoUUID(t *testing.T) {
	uc := quoting.NewClientUseCase(testutil.NewClientRepo(), logger.Nop())

	_, err := uc.Update(context.Background(), admin, "no-es-uuid", dto.ClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), admin, "no-es-uuid"), domain.ErrNotFound)
}

func TestClient_Delete(t *testing.T) {
	repo := testutil.NewClientRepo(&entity.Client{ID: clientID, UserID: "emp1", Name: "Ana", CompanyName: "Acme"})
	uc := quoting.NewClientUseCase(repo, logger.Nop())

	assert.ErrorIs(t, uc.Delete(context.Background(), employee, clientID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), admin, clientID))
	assert.ErrorIs(t, uc.Delete(context.Background(), admin, clientID), domain.ErrNotFound)
}

func TestClient_ReconcileSoloEnClientesDelPropietario(t *testing.T) {
	repo := testutil.NewClientRepo(&entity.Client{ID: "c1", UserID: "emp2", Name: "Ravi", CompanyName: "Acme", Email: "ravi@acme.in"})
	uc := quoting.NewClientUseCase(repo, logger.Nop())

	created, err := uc.Reconcile(context.Background(), &entity.Quotation{
		UserID: "emp1", ClientName: "Ravi", CompanyName: "Acme", Email: "ravi@acme.in",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, repo.All(), 2)
}
