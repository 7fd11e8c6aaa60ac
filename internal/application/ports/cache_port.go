package ports

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// UserCache caché de usuarios autenticados consultada por el middleware en cada petición.
// Get devuelve (nil, nil) si no hay entrada. Un fallo de la caché nunca debe bloquear la petición.
type UserCache interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	Set(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}

// NoopUserCache se usa cuando no hay Redis configurado.
type NoopUserCache struct{}

func (NoopUserCache) Get(context.Context, string) (*entity.User, error) { return nil, nil }
func (NoopUserCache) Set(context.Context, *entity.User) error           { return nil }
func (NoopUserCache) Delete(context.Context, string) error              { return nil }
