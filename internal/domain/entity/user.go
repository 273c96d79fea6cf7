package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User usuario del sistema. PasswordHash es bcrypt; Password solo aparece en respaldos
// antiguos (texto plano) y se reemplaza por el hash en el primer login exitoso.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Password     string    `json:"password,omitempty"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin indica rol administrador.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
