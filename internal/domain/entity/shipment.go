package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment representa um frete (uma viagem de carga).
// Costs e Result são derivados: só o reconciliador de totais os grava.
type Shipment struct {
	ID            int64
	Code          string // FRT-YYYY-NNN
	Origin        string
	Destination   string
	DriverID      int64
	DriverName    *string
	VehicleID     int64
	VehiclePlate  *string
	Ticket        *string
	InvoiceNumber *string
	FarmID        *int64
	FarmName      *string
	Commodity     *string
	Variety       *string
	Date          time.Time
	Sacks         int64
	Tonnage       decimal.Decimal
	PricePerTon   decimal.Decimal
	Revenue       decimal.Decimal
	Costs         decimal.Decimal
	Result        decimal.Decimal
	PaymentID     *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campos de leitura (JOIN com motoristas/frota).
	OwnerName    *string
	OwnerType    *string
	VehicleModel *string
}

// IsPaid indica que o frete já entrou em um pagamento e está travado.
func (s *Shipment) IsPaid() bool {
	return s.PaymentID != nil
}

// ShipmentFilter filtros da listagem de fretes.
type ShipmentFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	DriverID *int64
	FarmID   *int64
}
