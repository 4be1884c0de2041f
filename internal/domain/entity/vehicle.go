package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de veículo que tracionam carreta (mantêm placa_carreta).
const (
	VehicleTypeCarreta  = "CARRETA"
	VehicleTypeBitrem   = "BITREM"
	VehicleTypeRodotrem = "RODOTREM"

	VehicleStatusAvailable = "disponivel"

	OwnerTypeOwn = "PROPRIO"
)

// Vehicle é um caminhão da frota.
type Vehicle struct {
	ID              int64
	Code            string // FROTA-NNN
	Plate           string
	TrailerPlate    *string
	Model           *string
	Type            string
	CapacityTons    decimal.NullDecimal
	Odometer        decimal.NullDecimal
	ManufactureYear *int32
	FixedDriverID   *int64
	OwnerType       string
	Status          string
	LicensingExpiry *time.Time
	InsuranceExpiry *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VehicleFilter filtros da listagem.
type VehicleFilter struct {
	Status *string
	Type   *string
}
