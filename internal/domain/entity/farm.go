package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Farm é a fazenda de origem da carga.
// TotalTonnage, TotalSacks, TotalRevenue e LastShipment são função pura dos fretes vinculados.
type Farm struct {
	ID              int64
	Code            string // FAZ-YYYY-NNN
	Name            string
	State           string
	Owner           string
	Commodity       string
	Variety         *string
	Harvest         *string
	PricePerTon     decimal.Decimal
	AvgSackWeight   decimal.Decimal
	TotalSacks      int64
	TotalTonnage    decimal.Decimal
	TotalRevenue    decimal.Decimal
	LastShipment    *time.Time
	HarvestFinished bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FarmSummary agrega dados operacionais dos fretes da fazenda para o detalhe.
type FarmSummary struct {
	ShipmentCount       int64
	OperationalCosts    decimal.Decimal
	NetProfit           decimal.Decimal
	LastShipmentCode    *string
	LastShipmentDate    *time.Time
	LastShipmentOrigin  *string
	LastShipmentDest    *string
	LastShipmentTonnage decimal.NullDecimal
}

// FarmFilter filtros da listagem.
type FarmFilter struct {
	State     *string
	Commodity *string
}

// DefaultAvgSackWeight peso médio da saca (kg) quando não informado.
var DefaultAvgSackWeight = decimal.NewFromInt(25)
