// Package fetch descarga documentos remotos (PDF de cotizaciones) por HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
)

var _ ports.DocumentFetcher = (*HTTPFetcher)(nil)

// maxDocumentBytes límite de tamaño del documento descargado (20 MiB).
const maxDocumentBytes = 20 << 20

// HTTPFetcher implementa ports.DocumentFetcher con net/http.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher construye el fetcher con timeout de red de 30 s.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch descarga url. Un status distinto de 2xx es error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: construir request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: %s respondió %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: leer cuerpo: %w", err)
	}
	if len(body) > maxDocumentBytes {
		return nil, fmt.Errorf("fetch: documento supera %d bytes", maxDocumentBytes)
	}
	return body, nil
}
