package freight

import (
	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// Revenue calcula a receita bruta do frete: toneladas × valor por tonelada.
func Revenue(tonnage, pricePerTon decimal.Decimal) decimal.Decimal {
	return tonnage.Mul(pricePerTon).Round(2)
}

// SumCosts soma os valores de custos.
func SumCosts(costs []*entity.CostEntry) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(c.Amount)
	}
	return total
}

// ApplyCosts grava custos e resultado no frete (resultado = receita - custos).
func ApplyCosts(s *entity.Shipment, costs decimal.Decimal) {
	s.Costs = costs
	s.Result = s.Revenue.Sub(costs)
}

// FarmTotals são os campos derivados de uma fazenda.
type FarmTotals struct {
	Tonnage decimal.Decimal
	Sacks   int64
	Revenue decimal.Decimal
}

// SumFarm soma toneladas, sacas e receita dos fretes informados.
func SumFarm(shipments []*entity.Shipment) FarmTotals {
	t := FarmTotals{Tonnage: decimal.Zero, Revenue: decimal.Zero}
	for _, s := range shipments {
		t.Tonnage = t.Tonnage.Add(s.Tonnage)
		t.Sacks += s.Sacks
		t.Revenue = t.Revenue.Add(s.Revenue)
	}
	return t
}

// Margin devolve lucro/receita em percentual com duas casas; zero sem receita.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
