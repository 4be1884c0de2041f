package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/analytics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/cache"
)

// fakeDashboardRepo conta as leituras para verificar o cache.
type fakeDashboardRepo struct {
	stats      entity.OperationalStats
	routes     []entity.RouteStats
	statsCalls int
	routeCalls int
}

func (f *fakeDashboardRepo) OperationalStats(context.Context, time.Time) (*entity.OperationalStats, error) {
	f.statsCalls++
	s := f.stats
	return &s, nil
}

func (f *fakeDashboardRepo) RouteStats(context.Context) ([]entity.RouteStats, error) {
	f.routeCalls++
	return f.routes, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// BuildKPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildKPIs_MargemESaudeNormativa(t *testing.T) {
	k := analytics.BuildKPIs(&entity.OperationalStats{
		Revenue:         dec("10000"),
		Costs:           dec("2500"),
		Profit:          dec("7500"),
		ActiveDrivers:   4,
		RegularDrivers:  3,
		Vehicles:        2,
		RegularVehicles: 1,
	})
	assert.True(t, dec("75").Equal(k.Margin), k.Margin.String())
	// (75 + 50) / 2
	assert.True(t, dec("62.5").Equal(k.ComplianceScore), k.ComplianceScore.String())
}

func TestBuildKPIs_SemBaseVale100(t *testing.T) {
	k := analytics.BuildKPIs(&entity.OperationalStats{})
	assert.True(t, dec("100").Equal(k.ComplianceScore), k.ComplianceScore.String())
	assert.True(t, k.Margin.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cache
// ──────────────────────────────────────────────────────────────────────────────

func TestKPIs_SegundaLeituraVemDoCache(t *testing.T) {
	repo := &fakeDashboardRepo{stats: entity.OperationalStats{Revenue: dec("100"), Profit: dec("40")}}
	uc := analytics.NewDashboardUseCase(repo, cache.NewTTLCache(), time.Minute)

	first, cached, err := uc.KPIs(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := uc.KPIs(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)
	assert.Equal(t, 1, repo.statsCalls)
}

func TestRoutes_SemTTLSempreConsulta(t *testing.T) {
	repo := &fakeDashboardRepo{routes: []entity.RouteStats{
		{Origin: "Sorriso", Destination: "Rondonópolis", ShipmentCount: 2, Revenue: dec("3000"), Costs: dec("500"), Profit: dec("2500")},
	}}
	uc := analytics.NewDashboardUseCase(repo, cache.NewTTLCache(), 0)

	for i := 0; i < 2; i++ {
		routes, cached, err := uc.Routes(context.Background())
		require.NoError(t, err)
		assert.False(t, cached)
		require.Len(t, routes, 1)
		assert.Equal(t, "Sorriso", routes[0].Origin)
	}
	assert.Equal(t, 2, repo.routeCalls)
}
