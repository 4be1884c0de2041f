// Package analytics contém os casos de uso de leitura do painel (KPIs e rotas).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// Chaves de cache das respostas do painel.
const (
	CacheKeyKPIs   = "dashboard:kpis"
	CacheKeyRoutes = "dashboard:estatisticas-rotas"
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase monta os indicadores do painel.
//
// Fonte de dados: DashboardRepository (consultas somente leitura).
// As respostas ficam no cache pelo TTL configurado; o segundo retorno indica acerto de cache.
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	cache ports.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, cache ports.Cache, ttl time.Duration) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache, ttl: ttl, now: time.Now}
}

// KPIs devolve os indicadores gerais.
func (uc *DashboardUseCase) KPIs(ctx context.Context) (*dto.KPIResponse, bool, error) {
	if v, ok := uc.cache.Get(CacheKeyKPIs); ok {
		if kpis, ok := v.(*dto.KPIResponse); ok {
			return kpis, true, nil
		}
	}
	stats, err := uc.repo.OperationalStats(ctx, uc.now())
	if err != nil {
		return nil, false, fmt.Errorf("dashboard: indicadores: %w", err)
	}
	kpis := BuildKPIs(stats)
	uc.cache.Set(CacheKeyKPIs, kpis, uc.ttl)
	return kpis, false, nil
}

// Routes devolve as estatísticas por origem/destino, maior lucro primeiro.
func (uc *DashboardUseCase) Routes(ctx context.Context) ([]dto.RouteStatsResponse, bool, error) {
	if v, ok := uc.cache.Get(CacheKeyRoutes); ok {
		if routes, ok := v.([]dto.RouteStatsResponse); ok {
			return routes, true, nil
		}
	}
	rows, err := uc.repo.RouteStats(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("dashboard: rotas: %w", err)
	}
	out := make([]dto.RouteStatsResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RouteStatsResponse{
			Origin:        r.Origin,
			Destination:   r.Destination,
			ShipmentCount: r.ShipmentCount,
			Revenue:       r.Revenue,
			Costs:         r.Costs,
			Profit:        r.Profit,
		})
	}
	uc.cache.Set(CacheKeyRoutes, out, uc.ttl)
	return out, false, nil
}

// BuildKPIs converte os números brutos nos indicadores.
// saudeNormativa é a média da regularidade dos motoristas ativos e da frota; cada parcela vale 100 sem base.
func BuildKPIs(s *entity.OperationalStats) *dto.KPIResponse {
	drivers := percent(s.RegularDrivers, s.ActiveDrivers)
	fleet := percent(s.RegularVehicles, s.Vehicles)
	return &dto.KPIResponse{
		Revenue:         s.Revenue,
		Costs:           s.Costs,
		Profit:          s.Profit,
		Margin:          freight.Margin(s.Profit, s.Revenue),
		ShipmentCount:   s.ShipmentCount,
		ActiveDrivers:   s.ActiveDrivers,
		AvailableTrucks: s.AvailableTrucks,
		ComplianceScore: drivers.Add(fleet).Div(decimal.NewFromInt(2)).Round(2),
		PaymentsPending: s.PaymentsPending,
		PaymentsPaid:    s.PaymentsPaid,
		HarvestVolume:   s.HarvestVolume,
	}
}

func percent(part, total int64) decimal.Decimal {
	if total <= 0 {
		return hundred
	}
	return decimal.NewFromInt(part).Div(decimal.NewFromInt(total)).Mul(hundred)
}
