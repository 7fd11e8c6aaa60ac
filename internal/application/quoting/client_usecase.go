package quoting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// ClientUseCase registro de clientes. Los clientes pertenecen a su creador;
// un Super Admin ve y gestiona todos.
type ClientUseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, log: log, now: time.Now}
}

// Create registra un cliente a nombre del actor. Requiere rol con gestión de clientes.
func (uc *ClientUseCase) Create(ctx context.Context, actor entity.Actor, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if !actor.Role.CanManageClients() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	company := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es requerido")
	}
	if company == "" {
		return nil, domain.Invalid("companyName", "la empresa es requerida")
	}
	now := uc.now()
	c := &entity.Client{
		ID:            uuid.New().String(),
		UserID:        actor.UserID,
		Name:          name,
		CompanyName:   company,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Address:       strings.TrimSpace(in.Address),
		TaxID:         strings.TrimSpace(in.TaxID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// List devuelve los clientes visibles para el actor ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx, scopeClients(actor))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToClientResponse(c))
	}
	return out, nil
}

// Update aplica solo los campos informados; los vacíos conservan su valor.
func (uc *ClientUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if !actor.Role.CanManageClients() {
		return nil, domain.ErrForbidden
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !actor.CanAccess(c.UserID) {
		return nil, domain.ErrNotFound
	}
	override(&c.Name, in.Name)
	override(&c.CompanyName, in.CompanyName)
	override(&c.Email, strings.ToLower(in.Email))
	override(&c.ContactNumber, in.ContactNumber)
	override(&c.Address, in.Address)
	override(&c.TaxID, in.TaxID)
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// Delete elimina un cliente. ErrNotFound si no existe.
func (uc *ClientUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.Role.CanManageClients() {
		return domain.ErrForbidden
	}
	if !validID(id) {
		return domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || !actor.CanAccess(c.UserID) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Reconcile garantiza que exista un cliente del propietario de la cotización con sus datos
// de contacto. Busca por email si viene informado; si no, por nombre y empresa exactos.
// Devuelve true si creó un cliente nuevo.
func (uc *ClientUseCase) Reconcile(ctx context.Context, q *entity.Quotation) (bool, error) {
	f := repository.ClientFilter{OwnerID: q.UserID}
	var (
		existing *entity.Client
		err      error
	)
	if q.Email != "" {
		existing, err = uc.repo.FindByEmail(ctx, f, q.Email)
	} else {
		existing, err = uc.repo.FindByNameAndCompany(ctx, f, q.ClientName, q.CompanyName)
	}
	if err != nil {
		return false, fmt.Errorf("buscar cliente: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	now := uc.now()
	c := &entity.Client{
		ID:            uuid.New().String(),
		UserID:        q.UserID,
		Name:          q.ClientName,
		CompanyName:   q.CompanyName,
		Email:         q.Email,
		ContactNumber: q.ContactNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return false, fmt.Errorf("crear cliente: %w", err)
	}
	uc.log.Info().Str("client_id", c.ID).Str("quote_number", q.QuoteNumber).Msg("cliente creado desde cotización")
	return true, nil
}

func scopeClients(actor entity.Actor) repository.ClientFilter {
	if actor.Role.CanSeeAll() {
		return repository.ClientFilter{}
	}
	return repository.ClientFilter{OwnerID: actor.UserID}
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// validID descarta IDs que no son UUID antes de consultar PostgreSQL (evita el 22P02).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
