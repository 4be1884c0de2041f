package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// FarmUseCase casos de uso de fazendas. Os totais nunca vêm do cliente:
// só o reconciliador os escreve.
type FarmUseCase struct {
	txRunner ports.TxRunner
	repo     repository.FarmRepository
}

// NewFarmUseCase constrói o caso de uso.
func NewFarmUseCase(txRunner ports.TxRunner, repo repository.FarmRepository) *FarmUseCase {
	return &FarmUseCase{txRunner: txRunner, repo: repo}
}

// Create cadastra a fazenda e gera o código FAZ-YYYY-NNN na mesma transação.
func (uc *FarmUseCase) Create(ctx context.Context, in dto.CreateFarmRequest) (*dto.FarmResponse, error) {
	f := &entity.Farm{
		Name:          strings.TrimSpace(in.Name),
		State:         freight.UpperName(in.State),
		Owner:         strings.TrimSpace(in.Owner),
		Commodity:     strings.TrimSpace(in.Commodity),
		Variety:       freight.NilIfBlank(in.Variety),
		Harvest:       freight.NilIfBlank(in.Harvest),
		PricePerTon:   in.PricePerTon,
		AvgSackWeight: entity.DefaultAvgSackWeight,
	}
	if in.AvgSackWeight != nil {
		f.AvgSackWeight = *in.AvgSackWeight
	}
	if in.HarvestFinished != nil {
		f.HarvestFinished = *in.HarvestFinished
	}
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		return tx.Farms.Create(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return toFarmResponse(f), nil
}

// GetByID devolve a fazenda com o resumo operacional dos fretes vinculados.
func (uc *FarmUseCase) GetByID(ctx context.Context, id int64) (*dto.FarmResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("fazenda %d: %w", id, domain.ErrNotFound)
	}
	sum, err := uc.repo.Summary(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toFarmResponse(f)
	if sum != nil {
		out.ShipmentCount = &sum.ShipmentCount
		out.OperationalCosts = &sum.OperationalCosts
		out.NetProfit = &sum.NetProfit
		out.LastShipmentCode = sum.LastShipmentCode
		out.LastShipmentOrigin = sum.LastShipmentOrigin
		out.LastShipmentDest = sum.LastShipmentDest
		out.LastShipmentTonnage = dto.NullDecimalPtr(sum.LastShipmentTonnage)
	}
	return out, nil
}

// List lista fazendas com filtros e paginação.
func (uc *FarmUseCase) List(ctx context.Context, q dto.FarmListQuery) (*dto.Page[dto.FarmResponse], error) {
	f := entity.FarmFilter{State: q.State, Commodity: q.Commodity}
	if f.State != nil {
		s := freight.UpperName(*f.State)
		f.State = &s
	}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.FarmResponse, 0, len(list))
	for _, farm := range list {
		items = append(items, *toFarmResponse(farm))
	}
	return &dto.Page[dto.FarmResponse]{Items: items, Meta: dto.NewPageMeta(q.Page, total)}, nil
}

// Update altera os dados cadastrais com a linha da fazenda bloqueada.
func (uc *FarmUseCase) Update(ctx context.Context, id int64, in dto.UpdateFarmRequest) (*dto.FarmResponse, error) {
	if in.Name == nil && in.State == nil && in.Owner == nil && in.Commodity == nil && in.Variety == nil &&
		in.Harvest == nil && in.PricePerTon == nil && in.AvgSackWeight == nil && in.HarvestFinished == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		f, err := tx.Farms.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("fazenda %d: %w", id, domain.ErrNotFound)
		}
		applyFarmPatch(f, in)
		return tx.Farms.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func applyFarmPatch(f *entity.Farm, in dto.UpdateFarmRequest) {
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.State != nil {
		f.State = freight.UpperName(*in.State)
	}
	if in.Owner != nil {
		f.Owner = strings.TrimSpace(*in.Owner)
	}
	if in.Commodity != nil {
		f.Commodity = strings.TrimSpace(*in.Commodity)
	}
	if in.Variety != nil {
		f.Variety = freight.NilIfBlank(in.Variety)
	}
	if in.Harvest != nil {
		f.Harvest = freight.NilIfBlank(in.Harvest)
	}
	if in.PricePerTon != nil {
		f.PricePerTon = *in.PricePerTon
	}
	if in.AvgSackWeight != nil {
		f.AvgSackWeight = *in.AvgSackWeight
	}
	if in.HarvestFinished != nil {
		f.HarvestFinished = *in.HarvestFinished
	}
}

// Delete remove a fazenda; os fretes vinculados ficam com fazenda_id nulo.
func (uc *FarmUseCase) Delete(ctx context.Context, id int64) error {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("fazenda %d: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

// Recalculate refaz os totais da fazenda a partir dos fretes vinculados.
func (uc *FarmUseCase) Recalculate(ctx context.Context, id int64) (*dto.FarmResponse, error) {
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		ok, err := tx.Exists.Exists(ctx, repository.TableFarms, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("fazenda %d: %w", id, domain.ErrNotFound)
		}
		return tx.Totals.RecomputeFarm(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func toFarmResponse(f *entity.Farm) *dto.FarmResponse {
	out := &dto.FarmResponse{
		ID:              f.ID,
		Code:            f.Code,
		Name:            f.Name,
		State:           f.State,
		Owner:           f.Owner,
		Commodity:       f.Commodity,
		Variety:         f.Variety,
		Harvest:         f.Harvest,
		PricePerTon:     f.PricePerTon,
		AvgSackWeight:   f.AvgSackWeight,
		TotalSacks:      f.TotalSacks,
		TotalTonnage:    f.TotalTonnage,
		TotalRevenue:    f.TotalRevenue,
		LastShipment:    dto.FormatOptionalDate(f.LastShipment),
		HarvestFinished: f.HarvestFinished,
	}
	if !f.CreatedAt.IsZero() {
		created, updated := f.CreatedAt, f.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}
