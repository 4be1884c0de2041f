package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/memory"
)

func newStore() *memory.Store {
	s := memory.New()
	s.SetClock(func() time.Time { return time.Date(2026, 2, 23, 10, 0, 0, 0, time.UTC) })
	return s
}

func strPtr(s string) *string { return &s }

func pixDriver(name string) dto.CreateDriverRequest {
	return dto.CreateDriverRequest{
		Name:          name,
		Phone:         "(66) 99999-0001",
		Type:          entity.DriverTypeOutsourced,
		PaymentMethod: entity.PaymentMethodPix,
		PixKeyType:    strPtr("cpf"),
		PixKey:        strPtr("12345678901"),
	}
}

// addShipment grava um frete direto no repositório, sem passar pelo caso de uso.
func addShipment(t *testing.T, store *memory.Store, driverID, vehicleID int64, farmID *int64, date time.Time, tons string, sacks int64) {
	t.Helper()
	tonnage := decimal.RequireFromString(tons)
	price := decimal.NewFromInt(150)
	revenue := tonnage.Mul(price).Round(2)
	require.NoError(t, store.Repositories().Shipments.Create(context.Background(), &entity.Shipment{
		Origin:      "Sorriso",
		Destination: "Rondonópolis",
		DriverID:    driverID,
		VehicleID:   vehicleID,
		FarmID:      farmID,
		Date:        date,
		Sacks:       sacks,
		Tonnage:     tonnage,
		PricePerTon: price,
		Revenue:     revenue,
		Costs:       decimal.Zero,
		Result:      revenue,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Motoristas
// ──────────────────────────────────────────────────────────────────────────────

func TestDriverUseCase_CreateNormalizaNomeEDocumento(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	in := pixDriver("  joão   da silva ")
	in.Document = strPtr("123.456.789-01")
	out, err := uc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "JOÃO DA SILVA", out.Name)
	require.NotNil(t, out.Document)
	assert.Equal(t, "12345678901", *out.Document)
	assert.Equal(t, entity.DriverStatusActive, out.Status)
	assert.NotEmpty(t, out.Code)
}

func TestDriverUseCase_CreatePixSemChave(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	in := pixDriver("Maria Lima")
	in.PixKey = nil
	in.PixKeyType = strPtr("   ")
	_, err := uc.Create(context.Background(), in)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"chave_pix", "chave_pix_tipo"}, fields)

	n, err := repos.Drivers.Count(context.Background(), entity.DriverFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDriverUseCase_CreateTransferenciaExigeDadosBancarios(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	_, err := uc.Create(context.Background(), dto.CreateDriverRequest{
		Name:          "Pedro Alves",
		Phone:         "(66) 99999-0003",
		Type:          entity.DriverTypeOwn,
		PaymentMethod: entity.PaymentMethodBank,
		Bank:          strPtr("Banco do Brasil"),
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
}

func TestDriverUseCase_GetByIDComVeiculoVinculado(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	ctx := context.Background()
	drivers := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)
	vehicles := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	d, err := drivers.Create(ctx, pixDriver("Joao Silva"))
	require.NoError(t, err)
	fixed := dto.FlexInt64(d.ID)
	_, err = vehicles.Create(ctx, dto.CreateVehicleRequest{Plate: "ABC1D23", Type: "carreta", FixedDriverID: &fixed})
	require.NoError(t, err)

	got, err := drivers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LinkedVehicle)
	assert.Equal(t, "ABC-1D23", got.LinkedVehicle.Plate)
}

func TestDriverUseCase_UpdateSemCampos(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	_, err := uc.Update(context.Background(), 1, dto.UpdateDriverRequest{})

	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestDriverUseCase_DeleteComFretesVinculados(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	ctx := context.Background()
	uc := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	d, err := uc.Create(ctx, pixDriver("Joao Silva"))
	require.NoError(t, err)
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "ABC-1D23", Type: "TRUCK"}))
	addShipment(t, store, d.ID, 1, nil, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), "10", 400)

	err = uc.Delete(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	_, err = uc.GetByID(ctx, d.ID)
	assert.NoError(t, err)
}

func TestDriverUseCase_DeleteInexistente(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	assert.ErrorIs(t, uc.Delete(context.Background(), 99), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Frota
// ──────────────────────────────────────────────────────────────────────────────

func TestVehicleUseCase_CreatePadroes(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	out, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
		Plate:        "abc1d23",
		Type:         " carreta ",
		TrailerPlate: strPtr("xyz9e87"),
	})

	require.NoError(t, err)
	assert.Equal(t, "ABC-1D23", out.Plate)
	assert.Equal(t, "CARRETA", out.Type)
	assert.Equal(t, entity.OwnerTypeOwn, out.OwnerType)
	assert.Equal(t, entity.VehicleStatusAvailable, out.Status)
	require.NotNil(t, out.TrailerPlate)
	assert.Equal(t, "XYZ-9E87", *out.TrailerPlate)
}

func TestVehicleUseCase_CreateTruckDescartaPlacaCarreta(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	out, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
		Plate:        "ABC1D23",
		Type:         "TRUCK",
		TrailerPlate: strPtr("XYZ9E87"),
	})

	require.NoError(t, err)
	assert.Nil(t, out.TrailerPlate)
}

func TestVehicleUseCase_CreatePlacaDuplicada(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	ctx := context.Background()
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	_, err := uc.Create(ctx, dto.CreateVehicleRequest{Plate: "ABC1D23", Type: "TRUCK"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateVehicleRequest{Plate: "abc-1d23", Type: "TOCO"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestVehicleUseCase_CreateMotoristaFixoInexistente(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	missing := dto.FlexInt64(42)
	_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{Plate: "ABC1D23", Type: "TRUCK", FixedDriverID: &missing})

	var ferr *domain.FieldError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "motorista_fixo_id", ferr.Field)
}

func TestVehicleUseCase_CreateDataInvalida(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
		Plate:           "ABC1D23",
		Type:            "TRUCK",
		LicensingExpiry: strPtr("31/12/2026"),
	})

	require.Error(t, err)
	n, cerr := repos.Vehicles.Count(context.Background(), entity.VehicleFilter{})
	require.NoError(t, cerr)
	assert.Zero(t, n)
}

func TestVehicleUseCase_UpdateSemCampos(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	_, err := uc.Update(context.Background(), 1, dto.UpdateVehicleRequest{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}

func TestVehicleUseCase_DeleteComFretesVinculados(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	ctx := context.Background()
	drivers := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)
	uc := usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments)

	d, err := drivers.Create(ctx, pixDriver("Joao Silva"))
	require.NoError(t, err)
	v, err := uc.Create(ctx, dto.CreateVehicleRequest{Plate: "ABC1D23", Type: "TRUCK"})
	require.NoError(t, err)
	addShipment(t, store, d.ID, v.ID, nil, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), "10", 400)

	assert.ErrorIs(t, uc.Delete(ctx, v.ID), domain.ErrInUse)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fazendas
// ──────────────────────────────────────────────────────────────────────────────

func TestFarmUseCase_CreatePadroes(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewFarmUseCase(store, repos.Farms)

	out, err := uc.Create(context.Background(), dto.CreateFarmRequest{
		Name:        " Fazenda Santa Rita ",
		State:       "mt",
		Owner:       "Carlos Mendes",
		Commodity:   "Soja",
		PricePerTon: decimal.NewFromInt(150),
	})

	require.NoError(t, err)
	assert.Equal(t, "Fazenda Santa Rita", out.Name)
	assert.Equal(t, "MT", out.State)
	assert.True(t, out.AvgSackWeight.Equal(entity.DefaultAvgSackWeight))
	assert.False(t, out.HarvestFinished)
	assert.True(t, out.TotalTonnage.IsZero())
}

func TestFarmUseCase_RecalculateSomaFretesVinculados(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	ctx := context.Background()
	uc := usecase.NewFarmUseCase(store, repos.Farms)
	drivers := usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments)

	farm, err := uc.Create(ctx, dto.CreateFarmRequest{
		Name:        "Fazenda Santa Rita",
		State:       "MT",
		Owner:       "Carlos Mendes",
		Commodity:   "Soja",
		PricePerTon: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	d, err := drivers.Create(ctx, pixDriver("Joao Silva"))
	require.NoError(t, err)
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "ABC-1D23", Type: "TRUCK"}))

	farmID := farm.ID
	addShipment(t, store, d.ID, 1, &farmID, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "12", 480)
	addShipment(t, store, d.ID, 1, &farmID, time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC), "8.5", 340)
	addShipment(t, store, d.ID, 1, nil, time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC), "30", 1200)

	out, err := uc.Recalculate(ctx, farm.ID)

	require.NoError(t, err)
	assert.True(t, out.TotalTonnage.Equal(decimal.RequireFromString("20.5")), "toneladas: %s", out.TotalTonnage)
	assert.Equal(t, int64(820), out.TotalSacks)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(3075)), "faturamento: %s", out.TotalRevenue)
	require.NotNil(t, out.LastShipment)
	assert.Equal(t, "2026-02-18", *out.LastShipment)
	require.NotNil(t, out.ShipmentCount)
	assert.Equal(t, int64(2), *out.ShipmentCount)
}

func TestFarmUseCase_RecalculateInexistente(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewFarmUseCase(store, repos.Farms)

	_, err := uc.Recalculate(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFarmUseCase_GetByIDInexistente(t *testing.T) {
	store := newStore()
	repos := store.Repositories()
	uc := usecase.NewFarmUseCase(store, repos.Farms)

	_, err := uc.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// farmTxRunner registra os bloqueios de fazenda e pode falhar depois do Update
// para conferir o rollback.
type farmTxRunner struct {
	*memory.Store
	locked      []int64
	failOnWrite bool
}

func (r *farmTxRunner) Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	return r.Store.Run(ctx, func(tx repository.TxRepositories) error {
		tx.Farms = &trackedFarms{FarmRepository: tx.Farms, r: r}
		return fn(tx)
	})
}

type trackedFarms struct {
	repository.FarmRepository
	r *farmTxRunner
}

func (f *trackedFarms) GetForUpdate(ctx context.Context, id int64) (*entity.Farm, error) {
	f.r.locked = append(f.r.locked, id)
	return f.FarmRepository.GetForUpdate(ctx, id)
}

func (f *trackedFarms) Update(ctx context.Context, farm *entity.Farm) error {
	if err := f.FarmRepository.Update(ctx, farm); err != nil {
		return err
	}
	if f.r.failOnWrite {
		return errors.New("falha simulada após gravar")
	}
	return nil
}

func seedFarm(t *testing.T, store *memory.Store) *entity.Farm {
	t.Helper()
	farm := &entity.Farm{Name: "Fazenda Santa Rita", State: "MT", Owner: "Carlos Mendes", Commodity: "Soja",
		PricePerTon: decimal.NewFromInt(150), AvgSackWeight: entity.DefaultAvgSackWeight}
	require.NoError(t, store.Repositories().Farms.Create(context.Background(), farm))
	return farm
}

func TestFarmUseCase_UpdateBloqueiaFazendaNaTransacao(t *testing.T) {
	store := newStore()
	runner := &farmTxRunner{Store: store}
	uc := usecase.NewFarmUseCase(runner, store.Repositories().Farms)
	farm := seedFarm(t, store)

	price := decimal.NewFromInt(165)
	out, err := uc.Update(context.Background(), farm.ID, dto.UpdateFarmRequest{Name: strPtr(" Santa Rita II "), PricePerTon: &price})

	require.NoError(t, err)
	assert.Equal(t, []int64{farm.ID}, runner.locked)
	assert.Equal(t, "Santa Rita II", out.Name)
	assert.True(t, out.PricePerTon.Equal(price), "preço: %s", out.PricePerTon)
}

func TestFarmUseCase_UpdateComFalhaDesfazAlteracao(t *testing.T) {
	store := newStore()
	runner := &farmTxRunner{Store: store, failOnWrite: true}
	uc := usecase.NewFarmUseCase(runner, store.Repositories().Farms)
	farm := seedFarm(t, store)

	_, err := uc.Update(context.Background(), farm.ID, dto.UpdateFarmRequest{Name: strPtr("Outro Nome")})
	require.Error(t, err)

	got, err := store.Repositories().Farms.GetByID(context.Background(), farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fazenda Santa Rita", got.Name)
}

func TestFarmUseCase_UpdateInexistente(t *testing.T) {
	store := newStore()
	uc := usecase.NewFarmUseCase(store, store.Repositories().Farms)

	_, err := uc.Update(context.Background(), 7, dto.UpdateFarmRequest{Name: strPtr("Nada")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
