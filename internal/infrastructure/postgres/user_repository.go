package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// superAdminLockKey clave del advisory lock que serializa la creación del Super Admin inicial.
const superAdminLockKey = 7351002

const userColumns = `id, name, email, COALESCE(password_hash, ''), role, profile_image, is_verified,
	COALESCE(invitation_token_hash, ''), invitation_expires, created_at, updated_at`

// DB es el pool: consultas directas más apertura de transacciones.
type DB interface {
	Querier
	Beginner
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q  Querier
	tx *TxRunner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{q: db, tx: NewTxRunner(db)}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return insertUser(ctx, r.q, user)
}

func insertUser(ctx context.Context, q Querier, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, profile_image, is_verified,
		                   invitation_token_hash, invitation_expires, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := q.Exec(ctx, query,
		user.ID, user.Name, user.Email, nullIfEmpty(user.PasswordHash), string(user.Role), user.ProfileImage,
		user.IsVerified, nullIfEmpty(user.InvitationTokenHash), user.InvitationExpires,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByInvitationToken obtiene el usuario con invitación vigente para el hash dado.
func (r *UserRepo) GetByInvitationToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	return r.findOne(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE invitation_token_hash = $1 AND invitation_expires > $2`, tokenHash, now)
}

func (r *UserRepo) findOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.ProfileImage, &u.IsVerified,
		&u.InvitationTokenHash, &u.InvitationExpires, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// Update sobrescribe los campos mutables del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, profile_image = $6, is_verified = $7,
		    invitation_token_hash = $8, invitation_expires = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, nullIfEmpty(user.PasswordHash), string(user.Role), user.ProfileImage,
		user.IsVerified, nullIfEmpty(user.InvitationTokenHash), user.InvitationExpires, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID. Devuelve ErrNotFound si no existe.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateFirstSuperAdmin verifica e inserta bajo un advisory lock de transacción:
// dos llamadas concurrentes se serializan y la segunda ve el Super Admin ya creado.
func (r *UserRepo) CreateFirstSuperAdmin(ctx context.Context, user *entity.User) error {
	return r.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, superAdminLockKey); err != nil {
			return fmt.Errorf("lock super admin: %w", err)
		}
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, string(entity.RoleSuperAdmin)).Scan(&exists); err != nil {
			return fmt.Errorf("check super admin: %w", err)
		}
		if exists {
			return domain.ErrAlreadyInitialized
		}
		return insertUser(ctx, q, user)
	})
}
