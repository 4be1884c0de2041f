package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

func fixedStore() *Store {
	s := New()
	s.SetClock(func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) })
	return s
}

func TestRun_RollbackDescartaMasMantemSequencia(t *testing.T) {
	s := fixedStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(tx repository.TxRepositories) error {
		require.NoError(t, tx.Farms.Create(ctx, &entity.Farm{Name: "Descartada"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	repos := s.Repositories()
	n, err := repos.Farms.Count(ctx, entity.FarmFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	f := &entity.Farm{Name: "Mantida"}
	require.NoError(t, repos.Farms.Create(ctx, f))
	assert.Equal(t, int64(2), f.ID)
	assert.Equal(t, "FAZ-2026-002", f.Code)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := fixedStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(repository.TxRepositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRun_EscritasVisiveisSoAposCommit(t *testing.T) {
	s := fixedStore()
	ctx := context.Background()
	repos := s.Repositories()
	d := &entity.Driver{Name: "JOSÉ", Status: entity.DriverStatusActive}
	require.NoError(t, repos.Drivers.Create(ctx, d))

	err := s.Run(ctx, func(tx repository.TxRepositories) error {
		cur, err := tx.Drivers.GetByID(ctx, d.ID)
		require.NoError(t, err)
		cur.Name = "JOSÉ ALTERADO"
		require.NoError(t, tx.Drivers.Update(ctx, cur))
		got, err := tx.Drivers.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "JOSÉ ALTERADO", got.Name)
		return nil
	})
	require.NoError(t, err)

	got, err := repos.Drivers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "JOSÉ ALTERADO", got.Name)
}

func TestVehicle_PlacaDuplicada(t *testing.T) {
	s := fixedStore()
	ctx := context.Background()
	repos := s.Repositories()
	v := &entity.Vehicle{Plate: "ABC-1234", Type: entity.VehicleTypeCarreta}
	require.NoError(t, repos.Vehicles.Create(ctx, v))
	assert.Equal(t, "FROTA-001", v.Code)

	err := repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "ABC-1234", Type: entity.VehicleTypeCarreta})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDriverDelete_ComPagamentoEstaEmUso(t *testing.T) {
	s := fixedStore()
	ctx := context.Background()
	repos := s.Repositories()
	d := &entity.Driver{Name: "ANA"}
	require.NoError(t, repos.Drivers.Create(ctx, d))
	require.NoError(t, repos.Payments.Create(ctx, &entity.Payment{DriverID: d.ID, DriverName: d.Name, TotalAmount: decimal.NewFromInt(10)}))

	assert.ErrorIs(t, repos.Drivers.Delete(ctx, d.ID), domain.ErrInUse)
}

func TestExists_TabelaDesconhecida(t *testing.T) {
	s := fixedStore()
	_, err := s.Repositories().Exists.Exists(context.Background(), "usuarios; drop", 1)
	assert.Error(t, err)
}

func TestDashboard_RegularidadePorValidade(t *testing.T) {
	s := fixedStore()
	ctx := context.Background()
	repos := s.Repositories()
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expired := today.AddDate(0, 0, -1)

	require.NoError(t, repos.Drivers.Create(ctx, &entity.Driver{Name: "A", Status: entity.DriverStatusActive}))
	require.NoError(t, repos.Drivers.Create(ctx, &entity.Driver{Name: "B", Status: entity.DriverStatusActive, LicenseExpiry: &expired}))
	require.NoError(t, repos.Drivers.Create(ctx, &entity.Driver{Name: "C", Status: entity.DriverStatusInactive}))
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "AAA-0001", Status: entity.VehicleStatusAvailable, LicensingExpiry: &today}))
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "AAA-0002", Status: "manutencao", InsuranceExpiry: &expired}))

	stats, err := s.Dashboard().OperationalStats(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActiveDrivers)
	assert.Equal(t, int64(1), stats.RegularDrivers)
	assert.Equal(t, int64(2), stats.Vehicles)
	assert.Equal(t, int64(1), stats.AvailableTrucks)
	assert.Equal(t, int64(1), stats.RegularVehicles)
}

func TestUsers_EmailUnicoSemDiferenciarCaixa(t *testing.T) {
	s := fixedStore()
	ctx := context.Background()
	users := s.Users()
	require.NoError(t, users.Create(ctx, &entity.User{Name: "Admin", Email: "admin@agrotrack.com"}))
	err := users.Create(ctx, &entity.User{Name: "Outro", Email: "ADMIN@agrotrack.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := users.GetByEmail(ctx, "Admin@AgroTrack.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Admin", u.Name)
}

func TestPaginate_OffsetForaDaFaixa(t *testing.T) {
	list := []int{1, 2, 3, 4, 5, 6}

	assert.Equal(t, []int{3, 4}, paginate(list, 2, 2))
	assert.Equal(t, []int{5, 6}, paginate(list, 10, 4))
	assert.Empty(t, paginate(list, 10, 6))
	assert.Empty(t, paginate(list, 10, -6))
	assert.Equal(t, []int{2, 3, 4, 5, 6}, paginate(list, math.MaxInt, 1))
}
