package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFarmRequest entrada para cadastrar uma fazenda. Totais não são aceitos.
type CreateFarmRequest struct {
	Name            string           `json:"fazenda" validate:"required,min=2,max=200"`
	State           string           `json:"estado" validate:"required,len=2,alpha"`
	Owner           string           `json:"proprietario" validate:"required,min=2,max=200"`
	Commodity       string           `json:"mercadoria" validate:"required,max=100"`
	Variety         *string          `json:"variedade" validate:"omitempty,max=100"`
	Harvest         *string          `json:"safra" validate:"omitempty,max=20"`
	PricePerTon     decimal.Decimal  `json:"preco_por_tonelada" validate:"gte=0"`
	AvgSackWeight   *decimal.Decimal `json:"peso_medio_saca" validate:"omitempty,gt=0"`
	HarvestFinished *bool            `json:"colheita_finalizada"`
}

// UpdateFarmRequest campos editáveis de uma fazenda.
type UpdateFarmRequest struct {
	Name            *string          `json:"fazenda" validate:"omitempty,min=2,max=200"`
	State           *string          `json:"estado" validate:"omitempty,len=2,alpha"`
	Owner           *string          `json:"proprietario" validate:"omitempty,min=2,max=200"`
	Commodity       *string          `json:"mercadoria" validate:"omitempty,max=100"`
	Variety         *string          `json:"variedade" validate:"omitempty,max=100"`
	Harvest         *string          `json:"safra" validate:"omitempty,max=20"`
	PricePerTon     *decimal.Decimal `json:"preco_por_tonelada" validate:"omitempty,gte=0"`
	AvgSackWeight   *decimal.Decimal `json:"peso_medio_saca" validate:"omitempty,gt=0"`
	HarvestFinished *bool            `json:"colheita_finalizada"`
}

// FarmListQuery filtros de GET /fazendas.
type FarmListQuery struct {
	State     *string
	Commodity *string
	Page      PageQuery
}

// FarmResponse saída de uma fazenda. Os campos de resumo só vêm no detalhe.
type FarmResponse struct {
	ID              int64           `json:"id"`
	Code            string          `json:"codigo_fazenda"`
	Name            string          `json:"fazenda"`
	State           string          `json:"estado"`
	Owner           string          `json:"proprietario"`
	Commodity       string          `json:"mercadoria"`
	Variety         *string         `json:"variedade"`
	Harvest         *string         `json:"safra"`
	PricePerTon     decimal.Decimal `json:"preco_por_tonelada"`
	AvgSackWeight   decimal.Decimal `json:"peso_medio_saca"`
	TotalSacks      int64           `json:"total_sacas_carregadas"`
	TotalTonnage    decimal.Decimal `json:"total_toneladas"`
	TotalRevenue    decimal.Decimal `json:"faturamento_total"`
	LastShipment    *string         `json:"ultimo_frete"`
	HarvestFinished bool            `json:"colheita_finalizada"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`

	ShipmentCount       *int64           `json:"total_fretes_realizados,omitempty"`
	OperationalCosts    *decimal.Decimal `json:"total_custos_operacionais,omitempty"`
	NetProfit           *decimal.Decimal `json:"lucro_liquido,omitempty"`
	LastShipmentCode    *string          `json:"ultimo_frete_codigo,omitempty"`
	LastShipmentOrigin  *string          `json:"ultimo_frete_origem,omitempty"`
	LastShipmentDest    *string          `json:"ultimo_frete_destino,omitempty"`
	LastShipmentTonnage *decimal.Decimal `json:"ultimo_frete_toneladas,omitempty"`
}
