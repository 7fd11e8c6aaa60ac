package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrMissingToken           = errors.New("token requerido")
	ErrInvalidToken           = errors.New("token inválido o expirado")
	ErrInvalidOrExpiredInvite = errors.New("invitación inválida o expirada")
	ErrAlreadyInitialized     = errors.New("ya existe un Super Admin, inicie sesión")
	ErrEmailDispatchFailed    = errors.New("no se pudo enviar el correo")
	ErrDispatch               = errors.New("fallo en el relay de correo")
	ErrProtectedUser          = errors.New("no se puede eliminar un Super Admin")
	ErrStorage                = errors.New("fallo en el almacenamiento de archivos")
)

// ValidationError describe un campo inválido. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
