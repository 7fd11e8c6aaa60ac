package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, COALESCE(user_id::text, ''), name, company_name, email, contact_number, address, tax_id,
	created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, name, company_name, email, contact_number, address, tax_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.UserID), c.Name, c.CompanyName, c.Email, c.ContactNumber, c.Address, c.TaxID,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.findOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// FindByEmail primer cliente con ese email dentro del filtro.
func (r *ClientRepo) FindByEmail(ctx context.Context, f repository.ClientFilter, email string) (*entity.Client, error) {
	return r.findOne(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE email = $1 AND ($2::uuid IS NULL OR user_id = $2::uuid)
		ORDER BY created_at LIMIT 1`, email, nullIfEmpty(f.OwnerID))
}

// FindByNameAndCompany primer cliente con nombre y empresa exactos dentro del filtro.
func (r *ClientRepo) FindByNameAndCompany(ctx context.Context, f repository.ClientFilter, name, companyName string) (*entity.Client, error) {
	return r.findOne(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE name = $1 AND company_name = $2 AND ($3::uuid IS NULL OR user_id = $3::uuid)
		ORDER BY created_at LIMIT 1`, name, companyName, nullIfEmpty(f.OwnerID))
}

func (r *ClientRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CompanyName, &c.Email, &c.ContactNumber, &c.Address, &c.TaxID,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List lista clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE ($1::uuid IS NULL OR user_id = $1::uuid)
		ORDER BY name, created_at`, nullIfEmpty(f.OwnerID))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, company_name = $3, email = $4, contact_number = $5, address = $6, tax_id = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.CompanyName, c.Email, c.ContactNumber, c.Address, c.TaxID, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
