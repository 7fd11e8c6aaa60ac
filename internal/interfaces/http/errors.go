package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
)

// errorMapping traduce errores de dominio a status HTTP y código de respuesta.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrConflict, fiber.StatusBadRequest, "CONFLICT"},
	{domain.ErrProtectedUser, fiber.StatusBadRequest, "PROTECTED_USER"},
	{domain.ErrInvalidOrExpiredInvite, fiber.StatusBadRequest, "INVALID_INVITE"},
	{domain.ErrAlreadyInitialized, fiber.StatusBadRequest, "ALREADY_INITIALIZED"},
	{domain.ErrMissingToken, fiber.StatusUnauthorized, "MISSING_TOKEN"},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailDispatchFailed, fiber.StatusInternalServerError, "EMAIL_DISPATCH_FAILED"},
	{domain.ErrStorage, fiber.StatusInternalServerError, "STORAGE"},
}

// publicMessages mensajes fijos para errores cuyo detalle interno no debe exponerse.
var publicMessages = map[string]string{
	"UNAUTHORIZED":          "Not authorized",
	"EMAIL_DISPATCH_FAILED": "Email could not be sent",
	"STORAGE":               "File upload failed",
}

// writeError responde con el status correspondiente al error; lo no mapeado es 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			msg := err.Error()
			if m.status >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error en petición")
			}
			if fixed, ok := publicMessages[m.code]; ok {
				msg = fixed
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
