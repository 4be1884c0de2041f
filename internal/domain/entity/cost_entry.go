package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostEntry é uma linha de despesa de um frete.
type CostEntry struct {
	ID          int64
	ShipmentID  int64
	Type        string
	Description *string
	Amount      decimal.Decimal
	Date        time.Time
	HasReceipt  bool
	Notes       *string
	Driver      *string
	Vehicle     *string
	Route       *string
	Liters      decimal.NullDecimal
	FuelType    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CostFilter filtros da listagem de custos.
type CostFilter struct {
	ShipmentID *int64
	Type       *string
}
