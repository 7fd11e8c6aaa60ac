package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationSelect = `
	SELECT q.id, COALESCE(q.user_id::text, ''), q.quote_number, q.client_name, q.company_name, q.contact_number,
	       q.email, q.quote_date, q.valid_until, q.line_items, q.subtotal, q.tax, q.tax_rate, q.total_payable,
	       q.status, q.pdf_url, q.created_at, q.updated_at,
	       COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM quotations q
	LEFT JOIN users u ON u.id = q.user_id`

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste la cotización. El número de cotización es único (constraint en la tabla).
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	items, err := json.Marshal(lineItemsOrEmpty(q.LineItems))
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	query := `
		INSERT INTO quotations (id, user_id, quote_number, client_name, company_name, contact_number, email,
		                        quote_date, valid_until, line_items, subtotal, tax, tax_rate, total_payable,
		                        status, pdf_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(ctx, query,
		q.ID, nullIfEmpty(q.UserID), q.QuoteNumber, q.ClientName, q.CompanyName, q.ContactNumber, q.Email,
		q.QuoteDate, q.ValidUntil, items, q.Subtotal, q.Tax, q.TaxRate, q.TotalPayable,
		string(q.Status), q.PDFURL, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización con los datos de su propietario.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(ctx, quotationSelect+` WHERE q.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}

// List lista cotizaciones del filtro, más recientes primero.
func (r *QuotationRepo) List(ctx context.Context, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	query := quotationSelect + `
		WHERE ($1::uuid IS NULL OR q.user_id = $1::uuid)
		ORDER BY q.created_at DESC`
	args := []any{nullIfEmpty(f.OwnerID)}
	if f.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, f.Limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Update sobrescribe los campos mutables (el número y el propietario no cambian).
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	items, err := json.Marshal(lineItemsOrEmpty(q.LineItems))
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	query := `
		UPDATE quotations
		SET client_name = $2, company_name = $3, contact_number = $4, email = $5, quote_date = $6,
		    valid_until = $7, line_items = $8, subtotal = $9, tax = $10, tax_rate = $11,
		    total_payable = $12, status = $13, pdf_url = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		q.ID, q.ClientName, q.CompanyName, q.ContactNumber, q.Email, q.QuoteDate,
		q.ValidUntil, items, q.Subtotal, q.Tax, q.TaxRate,
		q.TotalPayable, string(q.Status), q.PDFURL, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una cotización por ID.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	var items []byte
	var status string
	if err := row.Scan(
		&q.ID, &q.UserID, &q.QuoteNumber, &q.ClientName, &q.CompanyName, &q.ContactNumber,
		&q.Email, &q.QuoteDate, &q.ValidUntil, &items, &q.Subtotal, &q.Tax, &q.TaxRate, &q.TotalPayable,
		&status, &q.PDFURL, &q.CreatedAt, &q.UpdatedAt,
		&q.OwnerName, &q.OwnerEmail,
	); err != nil {
		return nil, err
	}
	q.Status = entity.QuotationStatus(status)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &q.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items: %w", err)
		}
	}
	return &q, nil
}

func lineItemsOrEmpty(items []entity.LineItem) []entity.LineItem {
	if items == nil {
		return []entity.LineItem{}
	}
	return items
}
