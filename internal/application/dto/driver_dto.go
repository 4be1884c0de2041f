package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDriverRequest entrada para cadastrar motorista/proprietário.
type CreateDriverRequest struct {
	Name          string  `json:"nome" validate:"required,min=3,max=200"`
	Document      *string `json:"documento" validate:"omitempty,documento"`
	Phone         string  `json:"telefone" validate:"required,min=10,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"endereco" validate:"omitempty,max=255"`
	Status        *string `json:"status" validate:"omitempty,oneof=ativo inativo ferias"`
	Type          string  `json:"tipo" validate:"required,oneof=proprio terceirizado agregado"`
	PaymentMethod string  `json:"tipo_pagamento" validate:"required,oneof=pix transferencia_bancaria"`
	PixKeyType    *string `json:"chave_pix_tipo" validate:"omitempty,oneof=cpf cnpj email telefone aleatoria"`
	PixKey        *string `json:"chave_pix" validate:"omitempty,max=140"`
	Bank          *string `json:"banco" validate:"omitempty,max=100"`
	Agency        *string `json:"agencia" validate:"omitempty,max=20"`
	Account       *string `json:"conta" validate:"omitempty,max=30"`
	AccountType   *string `json:"tipo_conta" validate:"omitempty,oneof=corrente poupanca"`
	LicenseExpiry *string `json:"cnh_validade" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateDriverRequest campos editáveis. Strings vazias limpam campos opcionais.
type UpdateDriverRequest struct {
	Name          *string `json:"nome" validate:"omitempty,min=3,max=200"`
	Document      *string `json:"documento" validate:"omitempty,documento"`
	Phone         *string `json:"telefone" validate:"omitempty,min=10,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"endereco" validate:"omitempty,max=255"`
	Status        *string `json:"status" validate:"omitempty,oneof=ativo inativo ferias"`
	Type          *string `json:"tipo" validate:"omitempty,oneof=proprio terceirizado agregado"`
	PaymentMethod *string `json:"tipo_pagamento" validate:"omitempty,oneof=pix transferencia_bancaria"`
	PixKeyType    *string `json:"chave_pix_tipo" validate:"omitempty,oneof=cpf cnpj email telefone aleatoria"`
	PixKey        *string `json:"chave_pix" validate:"omitempty,max=140"`
	Bank          *string `json:"banco" validate:"omitempty,max=100"`
	Agency        *string `json:"agencia" validate:"omitempty,max=20"`
	Account       *string `json:"conta" validate:"omitempty,max=30"`
	AccountType   *string `json:"tipo_conta" validate:"omitempty,oneof=corrente poupanca"`
	LicenseExpiry *string `json:"cnh_validade" validate:"omitempty,datetime=2006-01-02"`
}

// DriverListQuery filtros de GET /motoristas.
type DriverListQuery struct {
	Status *string
	Type   *string
	Page   PageQuery
}

// DriverResponse saída de um motorista.
type DriverResponse struct {
	ID               int64            `json:"id"`
	Code             string           `json:"codigo_motorista"`
	Name             string           `json:"nome"`
	Document         *string          `json:"documento"`
	Phone            string           `json:"telefone"`
	Email            *string          `json:"email"`
	Address          *string          `json:"endereco"`
	Status           string           `json:"status"`
	Type             string           `json:"tipo"`
	PaymentMethod    string           `json:"tipo_pagamento"`
	PixKeyType       *string          `json:"chave_pix_tipo"`
	PixKey           *string          `json:"chave_pix"`
	Bank             *string          `json:"banco"`
	Agency           *string          `json:"agencia"`
	Account          *string          `json:"conta"`
	AccountType      *string          `json:"tipo_conta"`
	LicenseExpiry    *string          `json:"cnh_validade"`
	RevenueGenerated decimal.Decimal  `json:"receita_gerada"`
	TripsCompleted   int64            `json:"viagens_realizadas"`
	LinkedVehicle    *VehicleResponse `json:"veiculo_vinculado,omitempty"`
	CreatedAt        *time.Time       `json:"created_at,omitempty"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}
