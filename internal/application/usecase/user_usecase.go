package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// TokenIssuer emite la respuesta autenticada (usuario + token) tras un cambio de perfil.
type TokenIssuer interface {
	AuthResponse(user *entity.User) (*dto.AuthResponse, error)
}

// InviteConfig parámetros del correo de invitación.
type InviteConfig struct {
	FrontendURL string
	TTL         time.Duration
}

// UserUseCase aplica reglas de negocio para usuarios: invitaciones, listado, baja y perfil.
type UserUseCase struct {
	repo   repository.UserRepository
	mailer ports.Mailer
	cache  ports.UserCache
	tokens TokenIssuer
	invite InviteConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso. cache puede ser nil.
func NewUserUseCase(
	repo repository.UserRepository,
	mailer ports.Mailer,
	cache ports.UserCache,
	tokens TokenIssuer,
	invite InviteConfig,
	log *logger.Logger,
) *UserUseCase {
	if cache == nil {
		cache = ports.NoopUserCache{}
	}
	if invite.TTL <= 0 {
		invite.TTL = 24 * time.Hour
	}
	return &UserUseCase{
		repo:   repo,
		mailer: mailer,
		cache:  cache,
		tokens: tokens,
		invite: invite,
		log:    log,
		now:    time.Now,
	}
}

// Invite crea un usuario sin contraseña y le envía el enlace para configurarla.
// Si el correo no sale, el usuario creado se elimina y se devuelve ErrEmailDispatchFailed.
func (uc *UserUseCase) Invite(ctx context.Context, actor entity.Actor, in dto.InviteRequest) (*dto.MessageResponse, error) {
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	email := auth.NormalizeEmail(in.Email)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es requerido")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("email", "email inválido")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.Invalid("role", "rol inválido: "+in.Role)
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	token, hash, err := auth.NewInviteToken()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	expires := now.Add(uc.invite.TTL)
	user := &entity.User{
		ID:                  uuid.New().String(),
		Name:                name,
		Email:               email,
		Role:                role,
		InvitationTokenHash: hash,
		InvitationExpires:   &expires,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	msg, err := uc.inviteMessage(user, token)
	if err == nil {
		err = uc.mailer.Send(ctx, msg)
	}
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("no se pudo enviar la invitación")
		if delErr := uc.repo.Delete(ctx, user.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("user_id", user.ID).Msg("no se pudo eliminar el usuario invitado")
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrEmailDispatchFailed, err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("email", email).Str("role", string(role)).Msg("invitación enviada")
	return &dto.MessageResponse{Message: "Invitation sent to " + email}, nil
}

// List todos los usuarios (solo Super Admin).
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.UserResponse, error) {
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario. Las cuentas Super Admin no se pueden eliminar.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.Role.CanManageUsers() {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role == entity.RoleSuperAdmin {
		return domain.ErrProtectedUser
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// UpdateProfile actualiza el perfil del propio actor. Los campos vacíos conservan su valor.
// Devuelve un token nuevo.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor entity.Actor, in dto.UpdateProfileRequest) (*dto.AuthResponse, error) {
	user, err := uc.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := auth.NormalizeEmail(in.Email); email != "" && email != user.Email {
		other, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = email
	}
	if in.Password != "" {
		if len(in.Password) < auth.MinPasswordLength {
			return nil, domain.Invalid("password", "la contraseña debe tener al menos 6 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if img := strings.TrimSpace(in.ProfileImage); img != "" {
		user.ProfileImage = img
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	uc.invalidate(ctx, user.ID)
	return uc.tokens.AuthResponse(user)
}

func (uc *UserUseCase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo invalidar la caché de usuario")
	}
}

func (uc *UserUseCase) inviteMessage(user *entity.User, token string) (ports.Message, error) {
	link := strings.TrimRight(uc.invite.FrontendURL, "/") + "/setup-password/" + token
	var buf bytes.Buffer
	err := inviteTmpl.Execute(&buf, struct {
		Name  string
		Link  string
		Hours int
	}{user.Name, link, int(uc.invite.TTL.Hours())})
	if err != nil {
		return ports.Message{}, fmt.Errorf("render invitación: %w", err)
	}
	return ports.Message{To: user.Email, Subject: "QuoteMaster Pro Invitation", HTML: buf.String()}, nil
}

var inviteTmpl = template.Must(template.New("invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>You have been invited to join QuoteMaster Pro</h1>
  <p>Hi {{.Name}},</p>
  <p>Please click the link below to set up your password and access the account:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>This link expires in {{.Hours}} hours.</p>
</body>
</html>`))

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		ProfileImage:      u.ProfileImage,
		IsVerified:        u.IsVerified,
		InvitationPending: u.InvitationTokenHash != "",
		InvitationExpires: u.InvitationExpires,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
