package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
)

// ErrRelayDown error de transporte simulado.
var ErrRelayDown = errors.New("relay caído")

// Mailer registra cada intento de envío. Fail decide si un intento falla.
type Mailer struct {
	mu       sync.Mutex
	Attempts []ports.Message
	Fail     func(msg ports.Message) bool
}

func (m *Mailer) Send(_ context.Context, msg ports.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts = append(m.Attempts, msg)
	if m.Fail != nil && m.Fail(msg) {
		return errors.Join(domain.ErrDispatch, ErrRelayDown)
	}
	return nil
}

// Sent copia de los intentos registrados.
func (m *Mailer) Sent() []ports.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.Message(nil), m.Attempts...)
}

// FailAlways hace fallar todos los envíos.
func FailAlways(ports.Message) bool { return true }

// FailWithAttachment hace fallar solo los envíos con adjunto.
func FailWithAttachment(msg ports.Message) bool { return len(msg.Attachments) > 0 }

// Fetcher devuelve Content o Err y cuenta las llamadas.
type Fetcher struct {
	mu      sync.Mutex
	Content []byte
	Err     error
	Calls   []string
}

func (f *Fetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, url)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Content, nil
}
