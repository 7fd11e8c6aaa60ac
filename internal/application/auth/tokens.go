package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// inviteTokenBytes longitud del token de invitación antes de codificar (40 caracteres hex).
const inviteTokenBytes = 20

// NewInviteToken genera un token opaco de un solo uso y el hash que se persiste.
// Solo el hash queda en la base; el token viaja en el enlace del correo.
func NewInviteToken() (token, hash string, err error) {
	b := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generar token de invitación: %w", err)
	}
	token = hex.EncodeToString(b)
	return token, HashInviteToken(token), nil
}

// HashInviteToken SHA-256 hex del token de invitación.
func HashInviteToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
