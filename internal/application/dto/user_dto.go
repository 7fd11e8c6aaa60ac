package dto

import "time"

// LoginRequest entrada de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AcceptInviteRequest entrada de POST /api/auth/accept-invite.
type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// SetupRequest entrada de POST /api/auth/setup (Super Admin inicial).
type SetupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InviteRequest entrada de POST /api/users/invite.
type InviteRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateProfileRequest entrada de PUT /api/users/profile. Campos vacíos conservan el valor actual.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ProfileImage string `json:"profileImage"`
}

// AuthResponse usuario autenticado más token.
type AuthResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	Token        string `json:"token"`
}

// UserResponse salida de un usuario (sin password ni token de invitación).
type UserResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	ProfileImage      string     `json:"profileImage,omitempty"`
	IsVerified        bool       `json:"isVerified"`
	InvitationPending bool       `json:"invitationPending"`
	InvitationExpires *time.Time `json:"invitationExpires,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
