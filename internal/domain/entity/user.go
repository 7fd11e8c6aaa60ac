package entity

import "time"

// Role es el conjunto cerrado de roles del sistema.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleEmployee   Role = "Employee"
)

// ParseRole valida un rol recibido por la API. Vacío equivale a Employee.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleEmployee, true
	case RoleSuperAdmin, RoleEmployee:
		return Role(s), true
	default:
		return "", false
	}
}

// CanSeeAll ve y gestiona registros de todos los propietarios.
func (r Role) CanSeeAll() bool { return r == RoleSuperAdmin }

// CanManageClients crea, modifica y elimina clientes.
func (r Role) CanManageClients() bool { return r == RoleSuperAdmin }

// CanManageUsers invita, lista y elimina usuarios.
func (r Role) CanManageUsers() bool { return r == RoleSuperAdmin }

// User representa una cuenta del sistema.
// PasswordHash vacío = usuario invitado que aún no aceptó la invitación.
type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Role                Role
	ProfileImage        string
	IsVerified          bool
	InvitationTokenHash string     // SHA-256 hex del token enviado por correo
	InvitationExpires   *time.Time // nil si no hay invitación pendiente
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ClearInvitation consume la invitación.
func (u *User) ClearInvitation() {
	u.InvitationTokenHash = ""
	u.InvitationExpires = nil
}

// Actor identifica a quien ejecuta una operación (usuario autenticado).
type Actor struct {
	UserID string
	Role   Role
}

// CanAccess indica si el actor es propietario de un registro o puede ver todo.
func (a Actor) CanAccess(ownerID string) bool {
	return a.Role.CanSeeAll() || (ownerID != "" && ownerID == a.UserID)
}
