package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/storage"
)

// maxUploadBytes tamaño máximo aceptado por el endpoint de subida.
const maxUploadBytes = 10 << 20

// UploadResponse respuesta de POST /api/upload.
type UploadResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

// UploadHandler sube archivos (imágenes de perfil, PDF de cotizaciones) al almacenamiento externo.
type UploadHandler struct {
	storage ports.FileStorage
}

// NewUploadHandler construye el handler de subida.
func NewUploadHandler(s ports.FileStorage) *UploadHandler {
	return &UploadHandler{storage: s}
}

// Upload godoc
// @Summary      Subir archivo
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "jpg, jpeg, png o pdf"
// @Success      200   {object}  UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_FILE", Message: "No file uploaded"})
	}
	if !storage.IsAllowed(fh.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "solo se permiten archivos jpg, jpeg, png o pdf"})
	}
	if fh.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo supera 10 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	url, err := h.storage.Upload(c.UserContext(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(UploadResponse{Message: "File uploaded", FilePath: url})
}
