package mail

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
)

var _ ports.Mailer = NoEmail{}

// NoEmail se usa cuando no hay SMTP configurado: todo envío falla con ErrDispatch.
type NoEmail struct{}

func (NoEmail) Send(_ context.Context, msg ports.Message) error {
	return fmt.Errorf("%w: smtp no configurado (destinatario %s)", domain.ErrDispatch, msg.To)
}
