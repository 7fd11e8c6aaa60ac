package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/jwt"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña al aceptar invitación, setup o cambio de perfil.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, aceptación de invitación y Super Admin inicial.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cache    ports.UserCache
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. cache puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, cache ports.UserCache, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if cache == nil {
		cache = ports.NoopUserCache{}
	}
	return &AuthUseCase{userRepo: userRepo, cache: cache, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// Login verifica email/password y emite un token. Cualquier fallo de credenciales es ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email", "email y password son requeridos")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.AuthResponse(user)
}

// AcceptInvite consume una invitación vigente: fija la contraseña, verifica la cuenta y emite token.
// Si el token no existe o expiró, el usuario no se modifica.
func (uc *AuthUseCase) AcceptInvite(ctx context.Context, in dto.AcceptInviteRequest) (*dto.AuthResponse, error) {
	if in.Token == "" {
		return nil, domain.ErrInvalidOrExpiredInvite
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Invalid("password", "la contraseña debe tener al menos 6 caracteres")
	}
	user, err := uc.userRepo.GetByInvitationToken(ctx, HashInviteToken(in.Token), uc.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidOrExpiredInvite
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.IsVerified = true
	user.ClearInvitation()
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.cache.Delete(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo invalidar la caché de usuario")
	}
	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("invitación aceptada")
	return uc.AuthResponse(user)
}

// SetupSuperAdmin crea el primer Super Admin. Solo es posible mientras no exista ninguno;
// la verificación y el alta son atómicas en el repositorio.
func (uc *AuthUseCase) SetupSuperAdmin(ctx context.Context, in dto.SetupRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" {
		return nil, domain.Invalid("email", "name, email y password son requeridos")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Invalid("password", "la contraseña debe tener al menos 6 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateFirstSuperAdmin(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("super admin inicial creado")
	return uc.AuthResponse(user)
}

// CurrentUser carga el usuario referenciado por un token (caché primero, luego base).
func (uc *AuthUseCase) CurrentUser(ctx context.Context, id string) (*entity.User, error) {
	if cached, err := uc.cache.Get(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("user_id", id).Msg("caché de usuarios no disponible")
	} else if cached != nil {
		return cached, nil
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.cache.Set(ctx, user); err != nil {
		uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo cachear el usuario")
	}
	return user, nil
}

// ParseToken valida el token y devuelve el ID de usuario.
func (uc *AuthUseCase) ParseToken(token string) (string, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingToken) {
			return "", domain.ErrMissingToken
		}
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}

// AuthResponse emite un token para el usuario y arma la respuesta.
func (uc *AuthUseCase) AuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		ProfileImage: user.ProfileImage,
		Token:        token,
	}, nil
}

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
