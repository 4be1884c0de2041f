package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status e tipos de motorista.
const (
	DriverStatusActive   = "ativo"
	DriverStatusInactive = "inativo"
	DriverStatusVacation = "ferias"

	DriverTypeOwn        = "proprio"
	DriverTypeOutsourced = "terceirizado"
	DriverTypeAggregated = "agregado"

	PaymentMethodPix  = "pix"
	PaymentMethodBank = "transferencia_bancaria"
)

// Driver é o motorista ou proprietário de caminhão (favorecido dos pagamentos).
type Driver struct {
	ID               int64
	Code             string // MOT-YYYY-NNN
	Name             string
	Document         *string
	Phone            string
	Email            *string
	Address          *string
	Status           string
	Type             string
	PaymentMethod    string
	PixKeyType       *string
	PixKey           *string
	Bank             *string
	Agency           *string
	Account          *string
	AccountType      *string
	LicenseExpiry    *time.Time
	RevenueGenerated decimal.Decimal
	TripsCompleted   int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DriverFilter filtros da listagem.
type DriverFilter struct {
	Status *string
	Type   *string
}
