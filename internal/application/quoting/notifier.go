package quoting

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// NotifyKind variante del correo de cotización.
type NotifyKind int

const (
	NotifyCreated NotifyKind = iota
	NotifyUpdated
)

// DispatchStep paso del envío de una cotización.
type DispatchStep string

const (
	// StepAttach descarga el PDF y lo envía adjunto.
	StepAttach DispatchStep = "attach"
	// StepPlain reenvía el mismo correo sin adjunto.
	StepPlain DispatchStep = "plain"
)

// StepOutcome resultado de un paso. Err nil = correo entregado al relay.
type StepOutcome struct {
	Step DispatchStep
	Err  error
}

// DispatchReport resultado completo del envío. Ningún fallo aquí revierte la cotización.
type DispatchReport struct {
	QuoteNumber    string
	To             string
	Steps          []StepOutcome
	Delivered      bool
	WithAttachment bool
}

// Notifier envía la cotización por correo: primero con el PDF adjunto y,
// si la descarga o el envío fallan, una sola vez sin adjunto.
type Notifier struct {
	mailer  ports.Mailer
	fetcher ports.DocumentFetcher
	company string
	log     *logger.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(mailer ports.Mailer, fetcher ports.DocumentFetcher, company string, log *logger.Logger) *Notifier {
	return &Notifier{mailer: mailer, fetcher: fetcher, company: company, log: log}
}

// Dispatch ejecuta el envío y registra el resultado de cada paso.
func (n *Notifier) Dispatch(ctx context.Context, q *entity.Quotation, kind NotifyKind) DispatchReport {
	report := DispatchReport{QuoteNumber: q.QuoteNumber, To: q.Email}

	msg, err := n.render(q, kind)
	if err != nil {
		report.Steps = append(report.Steps, StepOutcome{Step: StepAttach, Err: err})
		n.logReport(report)
		return report
	}

	if err := n.sendWithAttachment(ctx, q, msg); err != nil {
		report.Steps = append(report.Steps, StepOutcome{Step: StepAttach, Err: err})
	} else {
		report.Steps = append(report.Steps, StepOutcome{Step: StepAttach})
		report.Delivered = true
		report.WithAttachment = true
		n.logReport(report)
		return report
	}

	err = n.mailer.Send(ctx, msg)
	report.Steps = append(report.Steps, StepOutcome{Step: StepPlain, Err: err})
	report.Delivered = err == nil
	n.logReport(report)
	return report
}

func (n *Notifier) sendWithAttachment(ctx context.Context, q *entity.Quotation, msg ports.Message) error {
	content, err := n.fetcher.Fetch(ctx, q.PDFURL)
	if err != nil {
		return fmt.Errorf("descargar pdf: %w", err)
	}
	msg.Attachments = []ports.Attachment{{
		Filename:    q.QuoteNumber + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}}
	return n.mailer.Send(ctx, msg)
}

func (n *Notifier) logReport(r DispatchReport) {
	for _, s := range r.Steps {
		if s.Err != nil {
			n.log.Warn().Err(s.Err).Str("quote_number", r.QuoteNumber).Str("email", r.To).
				Str("step", string(s.Step)).Msg("paso de envío de cotización fallido")
		}
	}
	if !r.Delivered {
		n.log.Error().Str("quote_number", r.QuoteNumber).Str("email", r.To).
			Msg("no se pudo enviar la cotización por correo")
		return
	}
	n.log.Info().Str("quote_number", r.QuoteNumber).Str("email", r.To).
		Bool("with_attachment", r.WithAttachment).Msg("cotización enviada por correo")
}

type quotationMailData struct {
	Updated     bool
	ClientName  string
	QuoteNumber string
	Company     string
	Total       string
	ValidUntil  string
	PDFURL      string
}

func (n *Notifier) render(q *entity.Quotation, kind NotifyKind) (ports.Message, error) {
	data := quotationMailData{
		Updated:     kind == NotifyUpdated,
		ClientName:  q.ClientName,
		QuoteNumber: q.QuoteNumber,
		Company:     n.company,
		Total:       FormatAmount(q.TotalPayable),
		PDFURL:      q.PDFURL,
	}
	if !q.ValidUntil.IsZero() {
		data.ValidUntil = q.ValidUntil.Format("02 Jan 2006")
	}
	var buf bytes.Buffer
	if err := quotationMailTmpl.Execute(&buf, data); err != nil {
		return ports.Message{}, fmt.Errorf("render correo: %w", err)
	}
	subject := fmt.Sprintf("Quotation %s from %s", q.QuoteNumber, n.company)
	if data.Updated {
		subject = "Updated " + subject
	}
	return ports.Message{To: q.Email, Subject: subject, HTML: buf.String()}, nil
}

var quotationMailTmpl = template.Must(template.New("quotation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #00467f;">{{if .Updated}}Updated Quotation{{else}}Quotation{{end}} {{.QuoteNumber}}</h2>
  <p>Dear {{.ClientName}},</p>
  {{if .Updated}}
  <p>Your quotation <strong>{{.QuoteNumber}}</strong> from {{.Company}} has been updated. Please review the latest version.</p>
  {{else}}
  <p>Thank you for your interest. Please find your quotation <strong>{{.QuoteNumber}}</strong> from {{.Company}}.</p>
  {{end}}
  <p>Total payable: <strong>&#8377;{{.Total}}</strong></p>
  {{if .ValidUntil}}<p>Valid until: {{.ValidUntil}}</p>{{end}}
  <p style="margin: 24px 0;">
    <a href="{{.PDFURL}}" style="background: #00467f; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">View Quotation PDF</a>
  </p>
  <p>Regards,<br>{{.Company}}</p>
</body>
</html>`))
