package logistics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// exportLimit teto de linhas de uma exportação de fretes.
const exportLimit = 5000

// ShipmentUseCase orquestra escrita e leitura de fretes.
// Toda escrita roda em uma transação: guarda de pagamento, checagem de referências,
// mutação e reconciliação dos totais da(s) fazenda(s) afetada(s).
type ShipmentUseCase struct {
	txRunner  ports.TxRunner
	shipments repository.ShipmentRepository
	exporter  ports.SpreadsheetExporter
}

// NewShipmentUseCase constrói o caso de uso.
func NewShipmentUseCase(txRunner ports.TxRunner, shipments repository.ShipmentRepository, exporter ports.SpreadsheetExporter) *ShipmentUseCase {
	return &ShipmentUseCase{txRunner: txRunner, shipments: shipments, exporter: exporter}
}

// Create registra o frete. receita = toneladas × valor_por_tonelada quando não enviada;
// custos começam em zero e resultado = receita.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.CreateShipmentResponse, error) {
	date, err := dto.ParseDate("data_frete", in.Date)
	if err != nil {
		return nil, err
	}
	revenue := freight.Revenue(in.Tonnage, in.PricePerTon)
	if in.Revenue != nil {
		revenue = *in.Revenue
	}

	s := &entity.Shipment{
		Origin:        strings.TrimSpace(in.Origin),
		Destination:   strings.TrimSpace(in.Destination),
		DriverID:      in.DriverID.Value(),
		DriverName:    freight.NilIfBlank(in.DriverName),
		VehicleID:     in.VehicleID.Value(),
		VehiclePlate:  freight.NilIfBlank(in.VehiclePlate),
		Ticket:        freight.NilIfBlank(in.Ticket),
		InvoiceNumber: freight.NilIfBlank(in.InvoiceNumber),
		FarmID:        in.FarmID.Ptr(),
		FarmName:      freight.NilIfBlank(in.FarmName),
		Commodity:     freight.NilIfBlank(in.Commodity),
		Variety:       freight.NilIfBlank(in.Variety),
		Date:          date,
		Sacks:         in.Sacks,
		Tonnage:       in.Tonnage,
		PricePerTon:   in.PricePerTon,
		Revenue:       revenue,
	}
	freight.ApplyCosts(s, decimal.Zero)
	if code := strings.ToUpper(strings.TrimSpace(in.Code)); freight.IsShipmentCode(code) {
		s.Code = code
	}

	err = uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		if err := uc.fillReferences(ctx, tx, s, true, true, s.FarmID != nil); err != nil {
			return err
		}
		if err := tx.Shipments.Create(ctx, s); err != nil {
			return err
		}
		if s.FarmID != nil {
			return tx.Totals.RecomputeFarm(ctx, *s.FarmID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("frete_id", s.ID).Str("codigo", s.Code).Msg("frete criado")
	return &dto.CreateShipmentResponse{ID: s.ID, Code: s.Code}, nil
}

// Update aplica os campos enviados. Frete pago é rejeitado; receita é recalculada quando
// toneladas ou valor_por_tonelada mudam sem receita explícita; fazenda antiga e nova são reconciliadas.
func (uc *ShipmentUseCase) Update(ctx context.Context, id int64, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	if shipmentPatchIsEmpty(in) {
		return nil, domain.ErrNoFieldsToUpdate
	}
	var date *time.Time
	if in.Date != nil {
		d, err := dto.ParseDate("data_frete", *in.Date)
		if err != nil {
			return nil, err
		}
		date = &d
	}

	var updated *entity.Shipment
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		s, err := tx.Shipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("frete %d: %w", id, domain.ErrNotFound)
		}
		if s.IsPaid() {
			return domain.ErrPaymentLocked
		}
		var oldFarm *int64
		if s.FarmID != nil {
			v := *s.FarmID
			oldFarm = &v
		}

		applyShipmentPatch(s, in, date)
		if err := uc.fillReferences(ctx, tx, s, in.DriverID != nil, in.VehicleID != nil, in.FarmID.Set); err != nil {
			return err
		}
		if in.Revenue == nil && (in.Tonnage != nil || in.PricePerTon != nil) {
			s.Revenue = freight.Revenue(s.Tonnage, s.PricePerTon)
		}
		freight.ApplyCosts(s, s.Costs)

		if err := tx.Shipments.Update(ctx, s); err != nil {
			return err
		}
		if err := tx.Totals.RecomputeShipment(ctx, s.ID); err != nil {
			return err
		}
		for _, farmID := range affectedFarms(oldFarm, s.FarmID) {
			if err := tx.Totals.RecomputeFarm(ctx, farmID); err != nil {
				return err
			}
		}
		updated, err = tx.Shipments.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toShipmentResponse(updated)
	return &out, nil
}

// Delete remove um frete não pago, seus custos, e reconcilia a fazenda vinculada.
func (uc *ShipmentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		s, err := tx.Shipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("frete %d: %w", id, domain.ErrNotFound)
		}
		if s.IsPaid() {
			return domain.ErrPaymentLocked
		}
		if err := tx.Costs.DeleteByShipment(ctx, id); err != nil {
			return err
		}
		if err := tx.Shipments.Delete(ctx, id); err != nil {
			return err
		}
		if s.FarmID != nil {
			return tx.Totals.RecomputeFarm(ctx, *s.FarmID)
		}
		return nil
	})
}

// GetByID devolve o frete ou ErrNotFound.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, id int64) (*dto.ShipmentResponse, error) {
	s, err := uc.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("frete %d: %w", id, domain.ErrNotFound)
	}
	out := toShipmentResponse(s)
	return &out, nil
}

// List lista fretes com filtros e paginação.
func (uc *ShipmentUseCase) List(ctx context.Context, q dto.ShipmentListQuery) (*dto.Page[dto.ShipmentResponse], error) {
	filter, err := toShipmentFilter(q)
	if err != nil {
		return nil, err
	}
	total, err := uc.shipments.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.shipments.List(ctx, filter, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ShipmentResponse]{Items: toShipmentResponses(list), Meta: dto.NewPageMeta(q.Page, total)}, nil
}

// Pending agrupa por proprietário os fretes ainda sem pagamento.
func (uc *ShipmentUseCase) Pending(ctx context.Context, driverID *int64) ([]dto.PendingOwnerResponse, error) {
	list, err := uc.shipments.ListPending(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return toPendingResponses(freight.GroupPendingByOwner(list)), nil
}

// Export gera a planilha dos fretes filtrados (sem paginação).
func (uc *ShipmentUseCase) Export(ctx context.Context, q dto.ShipmentListQuery) ([]byte, error) {
	filter, err := toShipmentFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.shipments.List(ctx, filter, exportLimit, 0)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Shipments(toShipmentResponses(list))
}

// ExportPending gera a planilha de pendentes, uma aba por proprietário.
func (uc *ShipmentUseCase) ExportPending(ctx context.Context, driverID *int64) ([]byte, error) {
	groups, err := uc.Pending(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return uc.exporter.PendingByOwner(groups)
}

// fillReferences valida motorista, caminhão e fazenda (quando indicados) e completa
// os nomes denormalizados que vieram vazios.
func (uc *ShipmentUseCase) fillReferences(ctx context.Context, tx repository.TxRepositories, s *entity.Shipment, driver, vehicle, farm bool) error {
	if driver {
		if err := requireRef(ctx, tx.Exists, repository.TableDrivers, s.DriverID, "motorista_id", "Motorista"); err != nil {
			return err
		}
		if s.DriverName == nil {
			d, err := tx.Drivers.GetByID(ctx, s.DriverID)
			if err != nil {
				return err
			}
			if d != nil {
				s.DriverName = &d.Name
			}
		}
	}
	if vehicle {
		if err := requireRef(ctx, tx.Exists, repository.TableVehicles, s.VehicleID, "caminhao_id", "Caminhão"); err != nil {
			return err
		}
		if s.VehiclePlate == nil {
			v, err := tx.Vehicles.GetByID(ctx, s.VehicleID)
			if err != nil {
				return err
			}
			if v != nil {
				s.VehiclePlate = &v.Plate
			}
		}
	}
	if farm && s.FarmID != nil {
		if err := requireRef(ctx, tx.Exists, repository.TableFarms, *s.FarmID, "fazenda_id", "Fazenda"); err != nil {
			return err
		}
		if s.FarmName == nil || s.Commodity == nil {
			f, err := tx.Farms.GetByID(ctx, *s.FarmID)
			if err != nil {
				return err
			}
			if f != nil {
				if s.FarmName == nil {
					s.FarmName = &f.Name
				}
				if s.Commodity == nil {
					s.Commodity = &f.Commodity
				}
			}
		}
	}
	return nil
}

// requireRef devolve FieldError quando o id referenciado não existe.
func requireRef(ctx context.Context, ex repository.ExistenceChecker, table string, id int64, field, label string) error {
	ok, err := ex.Exists(ctx, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ReferenceNotFound(field, label)
	}
	return nil
}

// affectedFarms devolve as fazendas a reconciliar, sem repetir quando antiga == nova.
func affectedFarms(oldFarm, newFarm *int64) []int64 {
	var ids []int64
	if oldFarm != nil {
		ids = append(ids, *oldFarm)
	}
	if newFarm != nil && (oldFarm == nil || *oldFarm != *newFarm) {
		ids = append(ids, *newFarm)
	}
	return ids
}

func shipmentPatchIsEmpty(in dto.UpdateShipmentRequest) bool {
	return in.Origin == nil && in.Destination == nil && in.DriverID == nil && in.DriverName == nil &&
		in.VehicleID == nil && in.VehiclePlate == nil && in.Ticket == nil && in.InvoiceNumber == nil &&
		!in.FarmID.Set && in.FarmName == nil && in.Commodity == nil && in.Variety == nil &&
		in.Date == nil && in.Sacks == nil && in.Tonnage == nil && in.PricePerTon == nil && in.Revenue == nil
}

func applyShipmentPatch(s *entity.Shipment, in dto.UpdateShipmentRequest, date *time.Time) {
	if in.Origin != nil {
		s.Origin = strings.TrimSpace(*in.Origin)
	}
	if in.Destination != nil {
		s.Destination = strings.TrimSpace(*in.Destination)
	}
	if in.DriverID != nil {
		s.DriverID = in.DriverID.Value()
		// nome antigo pertence ao motorista anterior
		s.DriverName = freight.NilIfBlank(in.DriverName)
	} else if in.DriverName != nil {
		s.DriverName = freight.NilIfBlank(in.DriverName)
	}
	if in.VehicleID != nil {
		s.VehicleID = in.VehicleID.Value()
		s.VehiclePlate = freight.NilIfBlank(in.VehiclePlate)
	} else if in.VehiclePlate != nil {
		s.VehiclePlate = freight.NilIfBlank(in.VehiclePlate)
	}
	if in.FarmID.Set {
		s.FarmID = in.FarmID.Value
		s.FarmName = freight.NilIfBlank(in.FarmName)
	} else if in.FarmName != nil {
		s.FarmName = freight.NilIfBlank(in.FarmName)
	}
	if in.Ticket != nil {
		s.Ticket = freight.NilIfBlank(in.Ticket)
	}
	if in.InvoiceNumber != nil {
		s.InvoiceNumber = freight.NilIfBlank(in.InvoiceNumber)
	}
	if in.Commodity != nil {
		s.Commodity = freight.NilIfBlank(in.Commodity)
	}
	if in.Variety != nil {
		s.Variety = freight.NilIfBlank(in.Variety)
	}
	if date != nil {
		s.Date = *date
	}
	if in.Sacks != nil {
		s.Sacks = *in.Sacks
	}
	if in.Tonnage != nil {
		s.Tonnage = *in.Tonnage
	}
	if in.PricePerTon != nil {
		s.PricePerTon = *in.PricePerTon
	}
	if in.Revenue != nil {
		s.Revenue = *in.Revenue
	}
}

func toShipmentFilter(q dto.ShipmentListQuery) (entity.ShipmentFilter, error) {
	from, err := dto.ParseOptionalDate("data_inicio", q.DateFrom)
	if err != nil {
		return entity.ShipmentFilter{}, err
	}
	to, err := dto.ParseOptionalDate("data_fim", q.DateTo)
	if err != nil {
		return entity.ShipmentFilter{}, err
	}
	return entity.ShipmentFilter{DateFrom: from, DateTo: to, DriverID: q.DriverID, FarmID: q.FarmID}, nil
}
