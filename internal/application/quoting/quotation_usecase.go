// Package quoting contiene los casos de uso de clientes y cotizaciones:
// alta con conciliación de cliente, envío por correo y representación PDF.
package quoting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// ClientReconciler crea el cliente de una cotización si aún no existe.
type ClientReconciler interface {
	Reconcile(ctx context.Context, q *entity.Quotation) (bool, error)
}

// QuotationNotifier envía una cotización por correo al cliente.
type QuotationNotifier interface {
	Dispatch(ctx context.Context, q *entity.Quotation, kind NotifyKind) DispatchReport
}

var hundred = decimal.NewFromInt(100)

// QuotationUseCase aplica las reglas de negocio de cotizaciones.
// La cotización persistida es la fuente de verdad: ni la conciliación de clientes
// ni el envío de correo pueden hacer fallar una escritura ya confirmada.
type QuotationUseCase struct {
	repo       repository.QuotationRepository
	reconciler ClientReconciler
	notifier   QuotationNotifier
	log        *logger.Logger
	now        func() time.Time
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	repo repository.QuotationRepository,
	reconciler ClientReconciler,
	notifier QuotationNotifier,
	log *logger.Logger,
) *QuotationUseCase {
	return &QuotationUseCase{
		repo:       repo,
		reconciler: reconciler,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
	}
}

// Create valida y persiste la cotización a nombre del actor. Luego concilia el cliente
// y, si corresponde, la envía por correo. ErrDuplicate si el número ya existe.
func (uc *QuotationUseCase) Create(ctx context.Context, actor entity.Actor, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	number := strings.TrimSpace(in.QuoteNumber)
	if number == "" {
		return nil, domain.Invalid("quoteNumber", "el número de cotización es requerido")
	}
	now := uc.now()
	q := &entity.Quotation{
		ID:          uuid.New().String(),
		UserID:      actor.UserID,
		QuoteNumber: number,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := applyRequest(q, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, q); err != nil {
		return nil, err
	}

	// ── Conciliación de cliente (nunca falla la creación) ────────────────────
	if _, err := uc.reconciler.Reconcile(ctx, q); err != nil {
		uc.log.Warn().Err(err).Str("quote_number", q.QuoteNumber).Msg("no se pudo conciliar el cliente")
	}

	if q.ShouldNotify() {
		uc.notifier.Dispatch(ctx, q, NotifyCreated)
	}

	created, err := uc.repo.GetByID(ctx, q.ID)
	if err != nil || created == nil {
		return ToQuotationResponse(q), nil
	}
	return ToQuotationResponse(created), nil
}

// List cotizaciones visibles para el actor, más recientes primero.
func (uc *QuotationUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.QuotationResponse, error) {
	list, err := uc.repo.List(ctx, scopeQuotations(actor))
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *ToQuotationResponse(q))
	}
	return out, nil
}

// GetByID ErrNotFound si no existe; ErrUnauthorized si el actor no es dueño ni Super Admin.
func (uc *QuotationUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// Update sobrescribe los campos mutables con el cuerpo recibido. El PDF solo se
// reemplaza si viene informado; si además el estado es sent y hay email, se reenvía.
func (uc *QuotationUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(q, in); err != nil {
		return nil, err
	}
	q.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, q); err != nil {
		return nil, err
	}

	if in.PDFURL != "" && q.ShouldNotify() {
		uc.notifier.Dispatch(ctx, q, NotifyUpdated)
	}
	return ToQuotationResponse(q), nil
}

// Delete elimina la cotización. ErrNotFound si no existe.
func (uc *QuotationUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *QuotationUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Quotation, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	q, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccess(q.UserID) {
		return nil, domain.ErrUnauthorized
	}
	return q, nil
}

// applyRequest valida la entrada y la copia sobre q recalculando los totales.
func applyRequest(q *entity.Quotation, in dto.QuotationRequest) error {
	clientName := strings.TrimSpace(in.ClientName)
	companyName := strings.TrimSpace(in.CompanyName)
	contact := strings.TrimSpace(in.ContactNumber)
	switch {
	case clientName == "":
		return domain.Invalid("clientName", "el nombre del cliente es requerido")
	case companyName == "":
		return domain.Invalid("companyName", "la empresa es requerida")
	case contact == "":
		return domain.Invalid("contactNumber", "el teléfono de contacto es requerido")
	case in.QuoteDate.IsZero():
		return domain.Invalid("quoteDate", "la fecha de cotización es requerida")
	case in.ValidUntil.IsZero():
		return domain.Invalid("validUntil", "la fecha de vigencia es requerida")
	case in.ValidUntil.Before(in.QuoteDate.Time):
		return domain.Invalid("validUntil", "la vigencia no puede ser anterior a la fecha de cotización")
	case in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred):
		return domain.Invalid("taxRate", "la tasa de impuesto debe estar entre 0 y 100")
	}
	for _, it := range in.LineItems {
		if strings.TrimSpace(it.Service) == "" {
			return domain.Invalid("lineItems", "cada línea requiere un servicio")
		}
		if strings.TrimSpace(it.Description) == "" {
			return domain.Invalid("lineItems", "cada línea requiere una descripción")
		}
		if it.Price.IsNegative() {
			return domain.Invalid("lineItems", "el precio no puede ser negativo")
		}
	}
	status, ok := entity.ParseQuotationStatus(in.Status)
	if !ok {
		return domain.Invalid("status", "estado inválido: "+in.Status)
	}

	q.ClientName = clientName
	q.CompanyName = companyName
	q.ContactNumber = contact
	q.Email = strings.ToLower(strings.TrimSpace(in.Email))
	q.QuoteDate = in.QuoteDate.Time
	q.ValidUntil = in.ValidUntil.Time
	q.LineItems = toLineItems(in.LineItems)
	q.TaxRate = in.TaxRate
	q.Status = status
	if pdf := strings.TrimSpace(in.PDFURL); pdf != "" {
		q.PDFURL = pdf
	}
	q.ComputeTotals()
	return nil
}

func scopeQuotations(actor entity.Actor) repository.QuotationFilter {
	if actor.Role.CanSeeAll() {
		return repository.QuotationFilter{}
	}
	return repository.QuotationFilter{OwnerID: actor.UserID}
}
