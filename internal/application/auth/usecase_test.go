package auth_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/testutil"
	"github.com/jhoicas/Cotizador-api/pkg/jwt"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const testSecret = "auth-usecase-test-secret"

func newAuth(repo *testutil.UserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, nil, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, logger.Nop())
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	repo := testutil.NewUserRepo(&entity.User{
		ID: "u1", Name: "Ana", Email: "ana@test.com", PasswordHash: hashed(t, "secreto1"), Role: entity.RoleEmployee,
	})
	res, err := newAuth(repo).Login(context.Background(), dto.LoginRequest{Email: " ANA@test.com ", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", res.ID)
	assert.Equal(t, "Employee", res.Role)

	claims, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := testutil.NewUserRepo(
		&entity.User{ID: "u1", Email: "ana@test.com", PasswordHash: hashed(t, "secreto1")},
		&entity.User{ID: "u2", Email: "invitado@test.com"},
	)
	uc := newAuth(repo)

	cases := []dto.LoginRequest{
		{Email: "ana@test.com", Password: "otra"},
		{Email: "nadie@test.com", Password: "secreto1"},
		{Email: "invitado@test.com", Password: "cualquiera"},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Email)
	}
}

// ── AcceptInvite ──────────────────────────────────────────────────────────────

func TestAcceptInvite_OK(t *testing.T) {
	token, hash, err := auth.NewInviteToken()
	require.NoError(t, err)
	assert.Len(t, token, 40)

	exp := time.Now().Add(time.Hour)
	repo := testutil.NewUserRepo(&entity.User{
		ID: "u1", Email: "nuevo@test.com", Role: entity.RoleEmployee,
		InvitationTokenHash: hash, InvitationExpires: &exp,
	})

	res, err := newAuth(repo).AcceptInvite(context.Background(), dto.AcceptInviteRequest{Token: token, Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	u, _ := repo.GetByID(context.Background(), "u1")
	assert.True(t, u.IsVerified)
	assert.Empty(t, u.InvitationTokenHash)
	assert.Nil(t, u.InvitationExpires)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("clave123")))

	// El token es de un solo uso.
	_, err = newAuth(repo).AcceptInvite(context.Background(), dto.AcceptInviteRequest{Token: token, Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredInvite)
}

// failingCache simula un Redis caído: Delete siempre falla.
type failingCache struct{ ports.NoopUserCache }

func (failingCache) Delete(context.Context, string) error { return errors.New("redis: connection refused") }

// Un fallo al invalidar la caché no impide aceptar la invitación, pero queda en el log.
func TestAcceptInvite_FalloDeCacheSeRegistra(t *testing.T) {
	token, hash, err := auth.NewInviteToken()
	require.NoError(t, err)
	exp := time.Now().Add(time.Hour)
	repo := testutil.NewUserRepo(&entity.User{
		ID: "u1", Email: "nuevo@test.com", Role: entity.RoleEmployee,
		InvitationTokenHash: hash, InvitationExpires: &exp,
	})

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	uc := auth.NewAuthUseCase(repo, failingCache{}, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, log)

	res, err := uc.AcceptInvite(context.Background(), dto.AcceptInviteRequest{Token: token, Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Contains(t, buf.String(), "no se pudo invalidar la caché de usuario")
	assert.Contains(t, buf.String(), `"user_id":"u1"`)
	assert.Contains(t, buf.String(), "connection refused")
}

func TestAcceptInvite_TokenExpiradoNoModificaUsuario(t *testing.T) {
	token, hash, err := auth.NewInviteToken()
	require.NoError(t, err)

	exp := time.Now().Add(-time.Minute)
	original := &entity.User{
		ID: "u1", Email: "nuevo@test.com", Role: entity.RoleEmployee,
		InvitationTokenHash: hash, InvitationExpires: &exp,
	}
	repo := testutil.NewUserRepo(original)

	_, err = newAuth(repo).AcceptInvite(context.Background(), dto.AcceptInviteRequest{Token: token, Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredInvite)

	u, _ := repo.GetByID(context.Background(), "u1")
	assert.Equal(t, *original, *u)
}

func TestAcceptInvite_PasswordCorta(t *testing.T) {
	_, err := newAuth(testutil.NewUserRepo()).AcceptInvite(context.Background(), dto.AcceptInviteRequest{Token: "abc", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── SetupSuperAdmin ───────────────────────────────────────────────────────────

func TestSetupSuperAdmin_SoloUnaVez(t *testing.T) {
	repo := testutil.NewUserRepo()
	uc := newAuth(repo)

	res, err := uc.SetupSuperAdmin(context.Background(), dto.SetupRequest{Name: "Root", Email: "root@test.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "SuperAdmin", res.Role)

	_, err = uc.SetupSuperAdmin(context.Background(), dto.SetupRequest{Name: "Otro", Email: "otro@test.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
}

func TestSetupSuperAdmin_Concurrente(t *testing.T) {
	repo := testutil.NewUserRepo()
	uc := newAuth(repo)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.SetupSuperAdmin(context.Background(), dto.SetupRequest{
				Name: "Root", Email: "root" + string(rune('a'+i)) + "@test.com", Password: "secreto1",
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrAlreadyInitialized) {
				fail++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, fail)
	assert.Equal(t, 1, repo.Count())
}

// ── CurrentUser / ParseToken ──────────────────────────────────────────────────

func TestCurrentUser(t *testing.T) {
	repo := testutil.NewUserRepo(&entity.User{ID: "u1", Email: "a@test.com", Role: entity.RoleEmployee})
	uc := newAuth(repo)

	u, err := uc.CurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", u.Email)

	_, err = uc.CurrentUser(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseToken(t *testing.T) {
	uc := newAuth(testutil.NewUserRepo())

	res, err := uc.AuthResponse(&entity.User{ID: "u9", Role: entity.RoleEmployee})
	require.NoError(t, err)
	id, err := uc.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u9", id)

	_, err = uc.ParseToken("")
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	_, err = uc.ParseToken("basura")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
