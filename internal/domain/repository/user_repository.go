package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByInvitationToken busca por hash exacto con expiración posterior a now.
	GetByInvitationToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// CreateFirstSuperAdmin crea el Super Admin inicial de forma atómica.
	// Devuelve domain.ErrAlreadyInitialized si ya existe uno.
	CreateFirstSuperAdmin(ctx context.Context, user *entity.User) error
}
