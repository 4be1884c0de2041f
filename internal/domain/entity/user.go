package entity

import "time"

// Roles de usuário.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// User representa um usuário do painel administrativo.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
