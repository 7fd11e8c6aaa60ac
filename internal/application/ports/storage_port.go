package ports

import (
	"context"
	"io"
)

// FileStorage sube archivos a un almacenamiento externo y devuelve la URL pública.
type FileStorage interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
