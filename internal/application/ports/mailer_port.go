package ports

import "context"

// Attachment adjunto de un correo: contenido en memoria o URL remota que el adaptador descarga.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	URL         string
}

// Message correo HTML a enviar por el relay.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer define el puerto de salida hacia el relay de correo.
// Los fallos de transporte o autenticación se devuelven envueltos en domain.ErrDispatch;
// la política de reintento es del caller.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// DocumentFetcher descarga el contenido binario de una URL pública (PDF de la cotización).
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
