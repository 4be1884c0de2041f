package logistics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// CostUseCase orquestra os lançamentos de custo. Após qualquer escrita, os custos e o
// resultado do(s) frete(s) afetado(s) são recalculados na mesma transação.
type CostUseCase struct {
	txRunner ports.TxRunner
	costs    repository.CostEntryRepository
}

// NewCostUseCase constrói o caso de uso.
func NewCostUseCase(txRunner ports.TxRunner, costs repository.CostEntryRepository) *CostUseCase {
	return &CostUseCase{txRunner: txRunner, costs: costs}
}

// Create registra um ou mais custos do mesmo frete e reconcilia o frete uma única vez.
// Lote vazio ou com fretes diferentes é rejeitado antes de qualquer escrita.
func (uc *CostUseCase) Create(ctx context.Context, items []dto.CostItemRequest) (*dto.CreateCostsResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	shipmentID := items[0].ShipmentID.Value()
	for _, it := range items[1:] {
		if it.ShipmentID.Value() != shipmentID {
			return nil, domain.ErrBatchMixedShipments
		}
	}
	entries := make([]*entity.CostEntry, 0, len(items))
	for i, it := range items {
		c, err := newCostEntry(it)
		if err != nil {
			if len(items) > 1 {
				return nil, prefixValidation(err, i)
			}
			return nil, err
		}
		entries = append(entries, c)
	}

	ids := make([]int64, 0, len(entries))
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		s, err := lockUnpaidShipment(ctx, tx, shipmentID)
		if err != nil {
			return err
		}
		for _, c := range entries {
			applyShipmentDefaults(c, s)
			if err := tx.Costs.Create(ctx, c); err != nil {
				return err
			}
			ids = append(ids, c.ID)
		}
		return tx.Totals.RecomputeShipment(ctx, shipmentID)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Int64("frete_id", shipmentID).Int("custos", len(ids)).Msg("custos registrados")
	return &dto.CreateCostsResult{IDs: ids, Created: len(ids), ShipmentID: shipmentID}, nil
}

// Update altera um custo. Mudar de frete exige destino existente e não pago;
// origem e destino são reconciliados.
func (uc *CostUseCase) Update(ctx context.Context, id int64, in dto.UpdateCostRequest) (*dto.CostResponse, error) {
	if costPatchIsEmpty(in) {
		return nil, domain.ErrNoFieldsToUpdate
	}
	var updated *entity.CostEntry
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		// custo bloqueado antes dos fretes: frete_id lido aqui vale até o Update
		c, err := tx.Costs.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("custo %d: %w", id, domain.ErrNotFound)
		}
		oldShipment := c.ShipmentID
		newShipment := oldShipment
		if in.ShipmentID != nil {
			newShipment = in.ShipmentID.Value()
		}

		// ordem crescente de id evita deadlock entre movimentações cruzadas
		for _, sid := range lockOrder(oldShipment, newShipment) {
			if _, err := lockUnpaidShipment(ctx, tx, sid); err != nil {
				return err
			}
		}

		if err := applyCostPatch(c, in); err != nil {
			return err
		}
		c.ShipmentID = newShipment
		if err := tx.Costs.Update(ctx, c); err != nil {
			return err
		}
		for _, sid := range lockOrder(oldShipment, newShipment) {
			if err := tx.Totals.RecomputeShipment(ctx, sid); err != nil {
				return err
			}
		}
		updated, err = tx.Costs.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toCostResponse(updated)
	return &out, nil
}

// Delete remove o custo e reconcilia o frete.
func (uc *CostUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		c, err := tx.Costs.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("custo %d: %w", id, domain.ErrNotFound)
		}
		if _, err := lockUnpaidShipment(ctx, tx, c.ShipmentID); err != nil {
			return err
		}
		if err := tx.Costs.Delete(ctx, id); err != nil {
			return err
		}
		return tx.Totals.RecomputeShipment(ctx, c.ShipmentID)
	})
}

// GetByID devolve o custo ou ErrNotFound.
func (uc *CostUseCase) GetByID(ctx context.Context, id int64) (*dto.CostResponse, error) {
	c, err := uc.costs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("custo %d: %w", id, domain.ErrNotFound)
	}
	out := toCostResponse(c)
	return &out, nil
}

// List lista custos com filtros e paginação.
func (uc *CostUseCase) List(ctx context.Context, q dto.CostListQuery) (*dto.Page[dto.CostResponse], error) {
	f := entity.CostFilter{ShipmentID: q.ShipmentID, Type: q.Type}
	total, err := uc.costs.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	list, err := uc.costs.List(ctx, f, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CostResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCostResponse(c))
	}
	return &dto.Page[dto.CostResponse]{Items: items, Meta: dto.NewPageMeta(q.Page, total)}, nil
}

// lockUnpaidShipment bloqueia o frete; inexistente → ErrNotFound, pago → ErrCostOnPaidShipment.
func lockUnpaidShipment(ctx context.Context, tx repository.TxRepositories, id int64) (*entity.Shipment, error) {
	s, err := tx.Shipments.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("frete %d: %w", id, domain.ErrNotFound)
	}
	if s.IsPaid() {
		return nil, domain.ErrCostOnPaidShipment
	}
	return s, nil
}

func lockOrder(a, b int64) []int64 {
	if a == b {
		return []int64{a}
	}
	ids := []int64{a, b}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func newCostEntry(it dto.CostItemRequest) (*entity.CostEntry, error) {
	date, err := dto.ParseDate("data", it.Date)
	if err != nil {
		return nil, err
	}
	c := &entity.CostEntry{
		ShipmentID:  it.ShipmentID.Value(),
		Type:        strings.TrimSpace(it.Type),
		Description: freight.NilIfBlank(it.Description),
		Amount:      it.Amount,
		Date:        date,
		Notes:       freight.NilIfBlank(it.Notes),
		Driver:      freight.NilIfBlank(it.Driver),
		Vehicle:     freight.NilIfBlank(it.Vehicle),
		Route:       freight.NilIfBlank(it.Route),
		Liters:      it.Liters.NullDecimal,
		FuelType:    freight.NilIfBlank(it.FuelType),
	}
	if it.HasReceipt != nil {
		c.HasReceipt = *it.HasReceipt
	}
	return c, nil
}

// applyShipmentDefaults preenche motorista, caminhão e rota a partir do frete quando omitidos.
func applyShipmentDefaults(c *entity.CostEntry, s *entity.Shipment) {
	if c.Driver == nil {
		c.Driver = s.DriverName
	}
	if c.Vehicle == nil {
		c.Vehicle = s.VehiclePlate
	}
	if c.Route == nil && s.Origin != "" && s.Destination != "" {
		route := s.Origin + " → " + s.Destination
		c.Route = &route
	}
}

func prefixValidation(err error, index int) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldIssue, len(ve.Fields))}
	for i, f := range ve.Fields {
		out.Fields[i] = domain.FieldIssue{Field: fmt.Sprintf("custos[%d].%s", index, f.Field), Message: f.Message}
	}
	return out
}

func costPatchIsEmpty(in dto.UpdateCostRequest) bool {
	return in.ShipmentID == nil && in.Type == nil && in.Description == nil && in.Amount == nil &&
		in.Date == nil && in.HasReceipt == nil && in.Notes == nil && in.Driver == nil &&
		in.Vehicle == nil && in.Route == nil && in.Liters == nil && in.FuelType == nil
}

func applyCostPatch(c *entity.CostEntry, in dto.UpdateCostRequest) error {
	if in.Date != nil {
		d, err := dto.ParseDate("data", *in.Date)
		if err != nil {
			return err
		}
		c.Date = d
	}
	if in.Type != nil {
		c.Type = strings.TrimSpace(*in.Type)
	}
	if in.Description != nil {
		c.Description = freight.NilIfBlank(in.Description)
	}
	if in.Amount != nil {
		c.Amount = *in.Amount
	}
	if in.HasReceipt != nil {
		c.HasReceipt = *in.HasReceipt
	}
	if in.Notes != nil {
		c.Notes = freight.NilIfBlank(in.Notes)
	}
	if in.Driver != nil {
		c.Driver = freight.NilIfBlank(in.Driver)
	}
	if in.Vehicle != nil {
		c.Vehicle = freight.NilIfBlank(in.Vehicle)
	}
	if in.Route != nil {
		c.Route = freight.NilIfBlank(in.Route)
	}
	if in.Liters != nil {
		c.Liters = in.Liters.NullDecimal
	}
	if in.FuelType != nil {
		c.FuelType = freight.NilIfBlank(in.FuelType)
	}
	return nil
}
