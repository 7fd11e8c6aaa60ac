// Package mail implementa el puerto ports.Mailer sobre SMTP (gomail).
package mail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos HTML por el relay configurado.
// Los adjuntos por URL se descargan con el fetcher antes de componer el mensaje.
type SMTPMailer struct {
	from    string
	fetcher ports.DocumentFetcher
	send    func(m ...*gomail.Message) error
}

// NewSMTPMailer construye el adaptador. fetcher solo se usa para adjuntos con URL.
func NewSMTPMailer(cfg config.SMTPConfig, fetcher ports.DocumentFetcher) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &SMTPMailer{
		from:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.User),
		fetcher: fetcher,
		send:    d.DialAndSend,
	}
}

// Send compone y entrega el mensaje. Cualquier fallo del relay se devuelve envuelto en domain.ErrDispatch.
func (s *SMTPMailer) Send(ctx context.Context, msg ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := s.compose(ctx, msg)
	if err != nil {
		return err
	}
	if err := s.send(m); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatch, err)
	}
	return nil
}

func (s *SMTPMailer) compose(ctx context.Context, msg ports.Message) (*gomail.Message, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		content := a.Content
		if content == nil && a.URL != "" {
			if s.fetcher == nil {
				return nil, fmt.Errorf("adjunto %s: sin fetcher para %s", a.Filename, a.URL)
			}
			b, err := s.fetcher.Fetch(ctx, a.URL)
			if err != nil {
				return nil, fmt.Errorf("adjunto %s: %w", a.Filename, err)
			}
			content = b
		}
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m, nil
}
