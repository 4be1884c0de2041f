package dto

import "time"

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// RegisterRequest cadastro de usuário do painel (somente admin).
type RegisterRequest struct {
	Name     string `json:"nome" validate:"required,min=3,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin operador"`
}

// UserResponse saída de um usuário (sem senha).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token e usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}
