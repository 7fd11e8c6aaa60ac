package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ClientFilter restringe los listados. OwnerID vacío = todos los propietarios.
type ClientFilter struct {
	OwnerID string
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, error)
	// FindByEmail y FindByNameAndCompany se usan para conciliar clientes al crear cotizaciones.
	FindByEmail(ctx context.Context, f ClientFilter, email string) (*entity.Client, error)
	FindByNameAndCompany(ctx context.Context, f ClientFilter, name, companyName string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
