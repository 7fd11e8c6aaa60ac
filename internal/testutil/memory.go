// Package testutil implementaciones en memoria de los puertos de persistencia y salida
// para tests de casos de uso y handlers.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ClientRepository    = (*ClientRepo)(nil)
	_ repository.QuotationRepository = (*QuotationRepo)(nil)
	_ repository.AnalyticsRepository = (*QuotationRepo)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo repositorio de usuarios en memoria. Seguro para uso concurrente.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func NewUserRepo(seed ...*entity.User) *UserRepo {
	r := &UserRepo{users: map[string]entity.User{}}
	for _, u := range seed {
		r.users[u.ID] = *u
	}
	return r
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(u)
}

func (r *UserRepo) insert(u *entity.User) error {
	for _, x := range r.users {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByInvitationToken(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if hash != "" && u.InvitationTokenHash == hash && u.InvitationExpires != nil && u.InvitationExpires.After(now) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, x := range r.users {
		if id != u.ID && x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) CreateFirstSuperAdmin(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Role == entity.RoleSuperAdmin {
			return domain.ErrAlreadyInitialized
		}
	}
	return r.insert(u)
}

// Count número de usuarios almacenados.
func (r *UserRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// ── Clients ───────────────────────────────────────────────────────────────────

// ClientRepo repositorio de clientes en memoria.
type ClientRepo struct {
	mu      sync.Mutex
	clients []entity.Client
	// FailCreate si no es nil, Create devuelve este error.
	FailCreate error
}

func NewClientRepo(seed ...*entity.Client) *ClientRepo {
	r := &ClientRepo{}
	for _, c := range seed {
		r.clients = append(r.clients, *c)
	}
	return r
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.clients = append(r.clients, *c)
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	return r.find(f, func(entity.Client) bool { return true }), nil
}

func (r *ClientRepo) FindByEmail(_ context.Context, f repository.ClientFilter, email string) (*entity.Client, error) {
	return first(r.find(f, func(c entity.Client) bool { return c.Email == email })), nil
}

func (r *ClientRepo) FindByNameAndCompany(_ context.Context, f repository.ClientFilter, name, company string) (*entity.Client, error) {
	return first(r.find(f, func(c entity.Client) bool { return c.Name == name && c.CompanyName == company })), nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.clients {
		if r.clients[i].ID == c.ID {
			r.clients[i] = *c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.clients {
		if r.clients[i].ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// All copia de todos los clientes almacenados.
func (r *ClientRepo) All() []entity.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Client(nil), r.clients...)
}

func (r *ClientRepo) find(f repository.ClientFilter, match func(entity.Client) bool) []*entity.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.clients {
		if f.OwnerID != "" && c.UserID != f.OwnerID {
			continue
		}
		if match(c) {
			out = append(out, &c)
		}
	}
	return out
}

func first(list []*entity.Client) *entity.Client {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// ── Quotations ────────────────────────────────────────────────────────────────

// QuotationRepo repositorio de cotizaciones en memoria. También implementa AnalyticsRepository.
type QuotationRepo struct {
	mu     sync.Mutex
	quotes []entity.Quotation
	users  *UserRepo
}

// NewQuotationRepo users es opcional y se usa para rellenar el propietario.
func NewQuotationRepo(users *UserRepo) *QuotationRepo {
	return &QuotationRepo{users: users}
}

func (r *QuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.quotes {
		if x.QuoteNumber == q.QuoteNumber {
			return domain.ErrDuplicate
		}
	}
	r.quotes = append(r.quotes, *q)
	return nil
}

func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.ID == id {
			r.populate(ctx, &q)
			return &q, nil
		}
	}
	return nil, nil
}

func (r *QuotationRepo) List(ctx context.Context, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Quotation
	for _, q := range r.quotes {
		if f.OwnerID != "" && q.UserID != f.OwnerID {
			continue
		}
		r.populate(ctx, &q)
		out = append(out, &q)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *QuotationRepo) Update(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.quotes {
		if r.quotes[i].ID == q.ID {
			r.quotes[i] = *q
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *QuotationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.quotes {
		if r.quotes[i].ID == id {
			r.quotes = append(r.quotes[:i], r.quotes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// GetQuotationStats agrega en memoria con las mismas reglas que la consulta SQL.
func (r *QuotationRepo) GetQuotationStats(_ context.Context, ownerID string) (repository.QuotationStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := repository.QuotationStats{Revenue: decimal.Zero}
	for _, q := range r.quotes {
		if ownerID != "" && q.UserID != ownerID {
			continue
		}
		s.Total++
		if q.Status == entity.QuotationAccepted {
			s.Accepted++
			s.Revenue = s.Revenue.Add(q.TotalPayable)
		}
		if q.Status.Pending() {
			s.Pending++
		}
	}
	return s, nil
}

// Len número de cotizaciones almacenadas.
func (r *QuotationRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quotes)
}

func (r *QuotationRepo) populate(ctx context.Context, q *entity.Quotation) {
	if r.users == nil || q.UserID == "" {
		return
	}
	if u, _ := r.users.GetByID(ctx, q.UserID); u != nil {
		q.OwnerName = u.Name
		q.OwnerEmail = u.Email
	}
}
