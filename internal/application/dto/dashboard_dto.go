package dto

import "github.com/shopspring/decimal"

// KPIResponse indicadores do painel.
type KPIResponse struct {
	Revenue         decimal.Decimal `json:"receitaTotal"`
	Costs           decimal.Decimal `json:"custosTotal"`
	Profit          decimal.Decimal `json:"lucroTotal"`
	Margin          decimal.Decimal `json:"margemLucro"`
	ShipmentCount   int64           `json:"totalFretes"`
	ActiveDrivers   int64           `json:"motoristasAtivos"`
	AvailableTrucks int64           `json:"caminhoesDisponiveis"`
	ComplianceScore decimal.Decimal `json:"saudeNormativa"`
	PaymentsPending decimal.Decimal `json:"pagamentosPendentes"`
	PaymentsPaid    decimal.Decimal `json:"pagamentosPagos"`
	HarvestVolume   decimal.Decimal `json:"volumeColheitaTotal"`
}

// RouteStatsResponse estatísticas de um par origem/destino.
type RouteStatsResponse struct {
	Origin        string          `json:"origem"`
	Destination   string          `json:"destino"`
	ShipmentCount int64           `json:"total_fretes"`
	Revenue       decimal.Decimal `json:"receita_total"`
	Costs         decimal.Decimal `json:"custos_total"`
	Profit        decimal.Decimal `json:"lucro_total"`
}
