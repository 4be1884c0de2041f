package entity

import "github.com/shopspring/decimal"

// OperationalStats são os números brutos lidos do banco para os KPIs.
type OperationalStats struct {
	Revenue         decimal.Decimal
	Costs           decimal.Decimal
	Profit          decimal.Decimal
	ShipmentCount   int64
	ActiveDrivers   int64
	RegularDrivers  int64
	Vehicles        int64
	AvailableTrucks int64
	RegularVehicles int64
	PaymentsPaid    decimal.Decimal
	PaymentsPending decimal.Decimal
	HarvestVolume   decimal.Decimal
}

// RouteStats agrega os fretes de um par origem/destino.
type RouteStats struct {
	Origin        string
	Destination   string
	ShipmentCount int64
	Revenue       decimal.Decimal
	Costs         decimal.Decimal
	Profit        decimal.Decimal
}
