package testutil

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// MustHash devuelve el hash bcrypt de pw con coste mínimo.
func MustHash(t testing.TB, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}
