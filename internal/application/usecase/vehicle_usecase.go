package usecase

import (
	"context"
	"fmt"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// VehicleUseCase casos de uso da frota.
type VehicleUseCase struct {
	txRunner  ports.TxRunner
	repo      repository.VehicleRepository
	shipments repository.ShipmentRepository
}

// NewVehicleUseCase constrói o caso de uso.
func NewVehicleUseCase(txRunner ports.TxRunner, repo repository.VehicleRepository, shipments repository.ShipmentRepository) *VehicleUseCase {
	return &VehicleUseCase{txRunner: txRunner, repo: repo, shipments: shipments}
}

// Create cadastra o caminhão com placa normalizada e código FROTA-NNN.
// Placa repetida devolve ErrDuplicate.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	in.Normalize()
	licensing, err := dto.ParseOptionalDate("validade_licenciamento", in.LicensingExpiry)
	if err != nil {
		return nil, err
	}
	insurance, err := dto.ParseOptionalDate("validade_seguro", in.InsuranceExpiry)
	if err != nil {
		return nil, err
	}
	v := &entity.Vehicle{
		Plate:           freight.NormalizePlate(in.Plate),
		Model:           freight.NilIfBlank(in.Model),
		Type:            in.Type,
		CapacityTons:    in.CapacityTons.NullDecimal,
		Odometer:        in.Odometer.NullDecimal,
		ManufactureYear: in.ManufactureYear,
		FixedDriverID:   in.FixedDriverID.Ptr(),
		OwnerType:       entity.OwnerTypeOwn,
		Status:          entity.VehicleStatusAvailable,
		LicensingExpiry: licensing,
		InsuranceExpiry: insurance,
	}
	if in.OwnerType != nil && *in.OwnerType != "" {
		v.OwnerType = *in.OwnerType
	}
	if in.Status != nil {
		v.Status = *in.Status
	}
	v.TrailerPlate = trailerPlate(v.Type, in.TrailerPlate)

	err = uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		if err := checkFixedDriver(ctx, tx.Exists, v.FixedDriverID); err != nil {
			return err
		}
		return tx.Vehicles.Create(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// GetByID devolve o caminhão ou ErrNotFound.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id int64) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("veículo %d: %w", id, domain.ErrNotFound)
	}
	return toVehicleResponse(v), nil
}

// List lista a frota com filtros e paginação.
func (uc *VehicleUseCase) List(ctx context.Context, q dto.VehicleListQuery) (*dto.Page[dto.VehicleResponse], error) {
	f := entity.VehicleFilter{Status: q.Status, Type: q.Type}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVehicleResponse(v))
	}
	return &dto.Page[dto.VehicleResponse]{Items: items, Meta: dto.NewPageMeta(q.Page, total)}, nil
}

// Update aplica os campos enviados. placa_carreta é descartada se o tipo não traciona carreta.
func (uc *VehicleUseCase) Update(ctx context.Context, id int64, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	in.Normalize()
	if vehiclePatchIsEmpty(in) {
		return nil, domain.ErrNoFieldsToUpdate
	}
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		v, err := tx.Vehicles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("veículo %d: %w", id, domain.ErrNotFound)
		}
		if err := applyVehiclePatch(v, in); err != nil {
			return err
		}
		if in.FixedDriverID != nil {
			if err := checkFixedDriver(ctx, tx.Exists, v.FixedDriverID); err != nil {
				return err
			}
		}
		return tx.Vehicles.Update(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete remove o caminhão; com fretes vinculados devolve ErrInUse.
func (uc *VehicleUseCase) Delete(ctx context.Context, id int64) error {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("veículo %d: %w", id, domain.ErrNotFound)
	}
	n, err := uc.shipments.CountByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return uc.repo.Delete(ctx, id)
}

func checkFixedDriver(ctx context.Context, ex repository.ExistenceChecker, driverID *int64) error {
	if driverID == nil {
		return nil
	}
	ok, err := ex.Exists(ctx, repository.TableDrivers, *driverID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ReferenceNotFound("motorista_fixo_id", "Motorista")
	}
	return nil
}

func trailerPlate(vehicleType string, plate *string) *string {
	if !freight.HasTrailer(vehicleType) {
		return nil
	}
	p := freight.NilIfBlank(plate)
	if p == nil {
		return nil
	}
	n := freight.NormalizePlate(*p)
	return &n
}

func vehiclePatchIsEmpty(in dto.UpdateVehicleRequest) bool {
	return in.Plate == nil && in.TrailerPlate == nil && in.Model == nil && in.Type == nil &&
		in.CapacityTons == nil && in.Odometer == nil && in.ManufactureYear == nil && in.FixedDriverID == nil &&
		in.OwnerType == nil && in.Status == nil && in.LicensingExpiry == nil && in.InsuranceExpiry == nil
}

func applyVehiclePatch(v *entity.Vehicle, in dto.UpdateVehicleRequest) error {
	if in.LicensingExpiry != nil {
		d, err := dto.ParseOptionalDate("validade_licenciamento", in.LicensingExpiry)
		if err != nil {
			return err
		}
		v.LicensingExpiry = d
	}
	if in.InsuranceExpiry != nil {
		d, err := dto.ParseOptionalDate("validade_seguro", in.InsuranceExpiry)
		if err != nil {
			return err
		}
		v.InsuranceExpiry = d
	}
	if in.Plate != nil {
		v.Plate = freight.NormalizePlate(*in.Plate)
	}
	if in.Model != nil {
		v.Model = freight.NilIfBlank(in.Model)
	}
	if in.Type != nil {
		v.Type = *in.Type
	}
	if in.CapacityTons != nil {
		v.CapacityTons = in.CapacityTons.NullDecimal
	}
	if in.Odometer != nil {
		v.Odometer = in.Odometer.NullDecimal
	}
	if in.ManufactureYear != nil {
		v.ManufactureYear = in.ManufactureYear
	}
	if in.FixedDriverID != nil {
		v.FixedDriverID = in.FixedDriverID.Ptr()
	}
	if in.OwnerType != nil && *in.OwnerType != "" {
		v.OwnerType = *in.OwnerType
	}
	if in.Status != nil {
		v.Status = *in.Status
	}
	if in.TrailerPlate != nil {
		v.TrailerPlate = trailerPlate(v.Type, in.TrailerPlate)
	} else if !freight.HasTrailer(v.Type) {
		v.TrailerPlate = nil
	}
	return nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	out := &dto.VehicleResponse{
		ID:              v.ID,
		Code:            v.Code,
		Plate:           v.Plate,
		TrailerPlate:    v.TrailerPlate,
		Model:           v.Model,
		Type:            v.Type,
		CapacityTons:    dto.NullDecimalPtr(v.CapacityTons),
		Odometer:        dto.NullDecimalPtr(v.Odometer),
		ManufactureYear: v.ManufactureYear,
		FixedDriverID:   v.FixedDriverID,
		OwnerType:       v.OwnerType,
		Status:          v.Status,
		LicensingExpiry: dto.FormatOptionalDate(v.LicensingExpiry),
		InsuranceExpiry: dto.FormatOptionalDate(v.InsuranceExpiry),
	}
	if !v.CreatedAt.IsZero() {
		created, updated := v.CreatedAt, v.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}
