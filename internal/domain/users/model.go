package users

import "time"

// Role define el rol único de un usuario.
// @Enum owner, staff
type Role string

const (
	RoleOwner Role = "owner" // dueño de mascotas
	RoleStaff Role = "staff" // funcionario/veterinario
)

func (r Role) IsStaff() bool { return r == RoleStaff }

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleStaff
}

// Actor es la identidad autenticada que ejecuta una operación de dominio.
// Los services deciden permisos a partir de esto, no los handlers.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsStaff() bool { return a.Role.IsStaff() }

// User representa una cuenta con exactamente un rol y sus datos de perfil.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role

	// Perfil
	Name     string
	Document string // documento de identidad
	Phone    string
	Address  string
	Position string // cargo, solo staff (ej: veterinario)

	CreatedAt time.Time
	UpdatedAt time.Time
}
