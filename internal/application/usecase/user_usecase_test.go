package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/testutil"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

var (
	admin    = entity.Actor{UserID: "admin", Role: entity.RoleSuperAdmin}
	employee = entity.Actor{UserID: "emp1", Role: entity.RoleEmployee}
)

func newUserUseCase(repo *testutil.UserRepo, mailer *testutil.Mailer) *usecase.UserUseCase {
	authUC := auth.NewAuthUseCase(repo, nil, auth.JWTConfig{Secret: "s", ExpMinutes: 60}, logger.Nop())
	return usecase.NewUserUseCase(repo, mailer, nil, authUC,
		usecase.InviteConfig{FrontendURL: "https://app.test/", TTL: 24 * time.Hour}, logger.Nop())
}

func seedUsers() *testutil.UserRepo {
	return testutil.NewUserRepo(
		&entity.User{ID: "admin", Name: "Admin", Email: "admin@test.com", Role: entity.RoleSuperAdmin},
		&entity.User{ID: "emp1", Name: "Emp", Email: "emp1@test.com", Role: entity.RoleEmployee},
	)
}

// ── Invite ────────────────────────────────────────────────────────────────────

func TestInvite_OK(t *testing.T) {
	repo := seedUsers()
	mailer := &testutil.Mailer{}
	uc := newUserUseCase(repo, mailer)

	res, err := uc.Invite(context.Background(), admin, dto.InviteRequest{Name: "Nuevo", Email: "Nuevo@Test.com"})
	require.NoError(t, err)
	assert.Equal(t, "Invitation sent to nuevo@test.com", res.Message)

	u, _ := repo.GetByEmail(context.Background(), "nuevo@test.com")
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleEmployee, u.Role)
	assert.Empty(t, u.PasswordHash)
	assert.False(t, u.IsVerified)
	require.NotNil(t, u.InvitationExpires)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *u.InvitationExpires, time.Minute)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "QuoteMaster Pro Invitation", sent[0].Subject)

	// El enlace lleva el token en claro; la base solo guarda su hash.
	i := strings.Index(sent[0].HTML, "https://app.test/setup-password/")
	require.GreaterOrEqual(t, i, 0)
	token := sent[0].HTML[i+len("https://app.test/setup-password/"):][:40]
	assert.Equal(t, auth.HashInviteToken(token), u.InvitationTokenHash)
}

func TestInvite_EmailExistente(t *testing.T) {
	mailer := &testutil.Mailer{}
	_, err := newUserUseCase(seedUsers(), mailer).Invite(context.Background(), admin, dto.InviteRequest{Name: "X", Email: "emp1@test.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, mailer.Sent())
}

func TestInvite_FalloDeCorreoEliminaUsuario(t *testing.T) {
	repo := seedUsers()
	uc := newUserUseCase(repo, &testutil.Mailer{Fail: testutil.FailAlways})

	_, err := uc.Invite(context.Background(), admin, dto.InviteRequest{Name: "Nuevo", Email: "nuevo@test.com"})
	assert.ErrorIs(t, err, domain.ErrEmailDispatchFailed)

	u, _ := repo.GetByEmail(context.Background(), "nuevo@test.com")
	assert.Nil(t, u)
	assert.Equal(t, 2, repo.Count())
}

func TestInvite_Permisos(t *testing.T) {
	uc := newUserUseCase(seedUsers(), &testutil.Mailer{})
	_, err := uc.Invite(context.Background(), employee, dto.InviteRequest{Name: "X", Email: "x@test.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Invite(context.Background(), admin, dto.InviteRequest{Name: "X", Email: "x@test.com", Role: "Root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── List / Delete ─────────────────────────────────────────────────────────────

func TestList(t *testing.T) {
	uc := newUserUseCase(seedUsers(), &testutil.Mailer{})
	list, err := uc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.List(context.Background(), employee)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete(t *testing.T) {
	repo := seedUsers()
	uc := newUserUseCase(repo, &testutil.Mailer{})

	assert.ErrorIs(t, uc.Delete(context.Background(), admin, "admin"), domain.ErrProtectedUser)
	assert.ErrorIs(t, uc.Delete(context.Background(), admin, "no-existe"), domain.ErrUserNotFound)
	require.NoError(t, uc.Delete(context.Background(), admin, "emp1"))
	assert.Equal(t, 1, repo.Count())
}

// ── UpdateProfile ─────────────────────────────────────────────────────────────

func TestUpdateProfile(t *testing.T) {
	repo := seedUsers()
	uc := newUserUseCase(repo, &testutil.Mailer{})

	res, err := uc.UpdateProfile(context.Background(), employee, dto.UpdateProfileRequest{
		Password: "nueva123", ProfileImage: "https://cdn.test/me.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Emp", res.Name)
	assert.Equal(t, "emp1@test.com", res.Email)
	assert.Equal(t, "https://cdn.test/me.png", res.ProfileImage)
	assert.NotEmpty(t, res.Token)

	u, _ := repo.GetByID(context.Background(), "emp1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva123")))

	_, err = uc.UpdateProfile(context.Background(), employee, dto.UpdateProfileRequest{Email: "admin@test.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
