package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de pagamento.
const (
	PaymentStatusPending    = "pendente"
	PaymentStatusProcessing = "processando"
	PaymentStatusPaid       = "pago"
	PaymentStatusCanceled   = "cancelado"
)

// Payment agrupa fretes de um proprietário e os marca como pagos.
type Payment struct {
	ID                int64
	Code              string // PAG-YYYY-NNN
	DriverID          int64
	DriverName        string
	Period            *string
	ShipmentCount     int64
	IncludedShipments string // ids separados por vírgula
	TotalTonnage      decimal.Decimal
	PricePerTon       decimal.NullDecimal
	TotalAmount       decimal.Decimal
	PaymentDate       time.Time
	Status            string
	Method            string
	ReceiptName       *string
	ReceiptURL        *string
	ReceiptUploadedAt *time.Time
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PaymentFilter filtros da listagem.
type PaymentFilter struct {
	DriverID *int64
	Status   *string
}

// OwnerPaidSummary resume os fretes pagos de um proprietário.
type OwnerPaidSummary struct {
	DriverID      int64
	DriverName    string
	ShipmentCount int64
	TotalTonnage  decimal.Decimal
	TotalAmount   decimal.Decimal
}
