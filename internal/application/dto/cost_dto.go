package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostItemRequest um custo a registrar.
type CostItemRequest struct {
	ShipmentID  *FlexInt64      `json:"frete_id" validate:"required,gt=0"`
	Type        string          `json:"tipo" validate:"required,max=50"`
	Description *string         `json:"descricao" validate:"omitempty,max=255"`
	Amount      decimal.Decimal `json:"valor" validate:"gt=0"`
	Date        string          `json:"data" validate:"required,datetime=2006-01-02"`
	HasReceipt  *bool           `json:"comprovante"`
	Notes       *string         `json:"observacoes"`
	Driver      *string         `json:"motorista" validate:"omitempty,max=200"`
	Vehicle     *string         `json:"caminhao" validate:"omitempty,max=20"`
	Route       *string         `json:"rota" validate:"omitempty,max=255"`
	Liters      FlexDecimal     `json:"litros"`
	FuelType    *string         `json:"tipo_combustivel" validate:"omitempty,max=30"`
}

// CostBatchRequest formato em lote: {frete_id, custos: [...]}.
// Custos nil indica que o corpo é um custo avulso.
type CostBatchRequest struct {
	ShipmentID *FlexInt64         `json:"frete_id"`
	Items      *[]CostItemRequest `json:"custos"`
}

// UpdateCostRequest campos editáveis de um custo.
type UpdateCostRequest struct {
	ShipmentID  *FlexInt64       `json:"frete_id" validate:"omitempty,gt=0"`
	Type        *string          `json:"tipo" validate:"omitempty,min=1,max=50"`
	Description *string          `json:"descricao" validate:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"valor" validate:"omitempty,gt=0"`
	Date        *string          `json:"data" validate:"omitempty,datetime=2006-01-02"`
	HasReceipt  *bool            `json:"comprovante"`
	Notes       *string          `json:"observacoes"`
	Driver      *string          `json:"motorista" validate:"omitempty,max=200"`
	Vehicle     *string          `json:"caminhao" validate:"omitempty,max=20"`
	Route       *string          `json:"rota" validate:"omitempty,max=255"`
	Liters      *FlexDecimal     `json:"litros"`
	FuelType    *string          `json:"tipo_combustivel" validate:"omitempty,max=30"`
}

// CostListQuery filtros de GET /custos.
type CostListQuery struct {
	ShipmentID *int64
	Type       *string
	Page       PageQuery
}

// CreateCostsResult ids criados e o frete reconciliado.
type CreateCostsResult struct {
	IDs        []int64 `json:"ids"`
	Created    int     `json:"totalCriados"`
	ShipmentID int64   `json:"frete_id"`
}

// CostResponse saída de um custo.
type CostResponse struct {
	ID          int64            `json:"id"`
	ShipmentID  int64            `json:"frete_id"`
	Type        string           `json:"tipo"`
	Description *string          `json:"descricao"`
	Amount      decimal.Decimal  `json:"valor"`
	Date        string           `json:"data"`
	HasReceipt  bool             `json:"comprovante"`
	Notes       *string          `json:"observacoes"`
	Driver      *string          `json:"motorista"`
	Vehicle     *string          `json:"caminhao"`
	Route       *string          `json:"rota"`
	Liters      *decimal.Decimal `json:"litros"`
	FuelType    *string          `json:"tipo_combustivel"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}
