// Package storage implementa ports.FileStorage sobre Cloudinary.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

var _ ports.FileStorage = (*CloudinaryStorage)(nil)

// AllowedFormats extensiones aceptadas por el endpoint de subida.
var AllowedFormats = []string{"jpg", "jpeg", "png", "pdf"}

// CloudinaryStorage sube archivos a una carpeta de Cloudinary con acceso público.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage construye el adaptador. CLOUDINARY_URL tiene prioridad sobre las credenciales sueltas.
func NewCloudinaryStorage(cfg config.StorageConfig) (*CloudinaryStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{cld: cld, folder: cfg.Folder}, nil
}

// Upload sube el contenido y devuelve la URL segura pública.
func (s *CloudinaryStorage) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !IsAllowed(filename) {
		return "", domain.Invalid("file", "formato no permitido: "+filename)
	}
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         s.folder,
		ResourceType:   "auto",
		AllowedFormats: api.CldAPIArray(AllowedFormats),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", domain.ErrStorage, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// IsAllowed valida la extensión del archivo contra AllowedFormats.
func IsAllowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range AllowedFormats {
		if ext == f {
			return true
		}
	}
	return false
}
