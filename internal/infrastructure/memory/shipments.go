package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
)

// ShipmentRepository fretes em memória.
type ShipmentRepository struct {
	acc accessor
	now func() time.Time
}

func (r *ShipmentRepository) Create(_ context.Context, s *entity.Shipment) error {
	return r.acc.write(func(st *state) error {
		now := r.now()
		s.ID = st.nextID("fretes")
		if s.Code == "" {
			s.Code = freight.YearCode(freight.PrefixShipment, now, s.ID)
		}
		for _, other := range st.shipments {
			if other.Code == s.Code {
				return fmt.Errorf("codigo_frete %s: %w", s.Code, domain.ErrDuplicate)
			}
		}
		s.CreatedAt, s.UpdatedAt = now, now
		st.shipments[s.ID] = *s
		return nil
	})
}

func (r *ShipmentRepository) GetByID(_ context.Context, id int64) (*entity.Shipment, error) {
	var out *entity.Shipment
	err := r.acc.read(func(st *state) error {
		if s, ok := st.shipments[id]; ok {
			out = withJoins(st, s)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: Run já serializa as transações.
func (r *ShipmentRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	return r.GetByID(ctx, id)
}

func (r *ShipmentRepository) ListForUpdate(_ context.Context, ids []int64) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.acc.read(func(st *state) error {
		for _, id := range ids {
			if s, ok := st.shipments[id]; ok {
				out = append(out, withJoins(st, s))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// Update grava os campos editáveis; custos, resultado e pagamento_id ficam como estão.
func (r *ShipmentRepository) Update(_ context.Context, s *entity.Shipment) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.shipments[s.ID]
		if !ok {
			return fmt.Errorf("frete %d: %w", s.ID, domain.ErrNotFound)
		}
		next := *s
		next.Code = cur.Code
		next.Costs, next.Result, next.PaymentID = cur.Costs, cur.Result, cur.PaymentID
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = r.now()
		next.OwnerName, next.OwnerType, next.VehicleModel = nil, nil, nil
		st.shipments[s.ID] = next
		return nil
	})
}

func (r *ShipmentRepository) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.shipments[id]; !ok {
			return fmt.Errorf("frete %d: %w", id, domain.ErrNotFound)
		}
		delete(st.shipments, id)
		return nil
	})
}

func (r *ShipmentRepository) List(_ context.Context, f entity.ShipmentFilter, limit, offset int) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.acc.read(func(st *state) error {
		list := filterShipments(st, f)
		sortByDateDesc(list)
		out = paginate(list, limit, offset)
		return nil
	})
	return out, err
}

func (r *ShipmentRepository) Count(_ context.Context, f entity.ShipmentFilter) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		n = int64(len(filterShipments(st, f)))
		return nil
	})
	return n, err
}

// ListPending fretes sem pagamento em ordem cronológica.
func (r *ShipmentRepository) ListPending(_ context.Context, driverID *int64) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.acc.read(func(st *state) error {
		for _, id := range sortedIDs(st.shipments) {
			s := st.shipments[id]
			if s.PaymentID != nil || (driverID != nil && s.DriverID != *driverID) {
				continue
			}
			out = append(out, withJoins(st, s))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, err
}

func (r *ShipmentRepository) ListByPayment(_ context.Context, paymentID int64) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.acc.read(func(st *state) error {
		for _, id := range sortedIDs(st.shipments) {
			s := st.shipments[id]
			if s.PaymentID != nil && *s.PaymentID == paymentID {
				out = append(out, withJoins(st, s))
			}
		}
		return nil
	})
	return out, err
}

func (r *ShipmentRepository) CountByDriver(_ context.Context, driverID int64) (int64, error) {
	return r.countWhere(func(s entity.Shipment) bool { return s.DriverID == driverID })
}

func (r *ShipmentRepository) CountByVehicle(_ context.Context, vehicleID int64) (int64, error) {
	return r.countWhere(func(s entity.Shipment) bool { return s.VehicleID == vehicleID })
}

func (r *ShipmentRepository) MarkPaid(_ context.Context, paymentID int64, ids []int64) error {
	return r.acc.write(func(st *state) error {
		now := r.now()
		for _, id := range ids {
			s, ok := st.shipments[id]
			if !ok {
				return fmt.Errorf("frete %d: %w", id, domain.ErrNotFound)
			}
			pid := paymentID
			s.PaymentID = &pid
			s.UpdatedAt = now
			st.shipments[id] = s
		}
		return nil
	})
}

func (r *ShipmentRepository) ClearPayment(_ context.Context, paymentID int64) error {
	return r.acc.write(func(st *state) error {
		for id, s := range st.shipments {
			if s.PaymentID != nil && *s.PaymentID == paymentID {
				s.PaymentID = nil
				st.shipments[id] = s
			}
		}
		return nil
	})
}

func (r *ShipmentRepository) countWhere(pred func(entity.Shipment) bool) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		for _, s := range st.shipments {
			if pred(s) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// withJoins copia o frete e completa os campos de leitura (proprietário e modelo).
func withJoins(st *state, s entity.Shipment) *entity.Shipment {
	if d, ok := st.drivers[s.DriverID]; ok {
		name, typ := d.Name, d.Type
		s.OwnerName, s.OwnerType = &name, &typ
	}
	if v, ok := st.vehicles[s.VehicleID]; ok {
		s.VehicleModel = v.Model
	}
	return &s
}

func filterShipments(st *state, f entity.ShipmentFilter) []*entity.Shipment {
	var out []*entity.Shipment
	for _, s := range st.shipments {
		if f.DateFrom != nil && s.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && s.Date.After(*f.DateTo) {
			continue
		}
		if f.DriverID != nil && s.DriverID != *f.DriverID {
			continue
		}
		if f.FarmID != nil && (s.FarmID == nil || *s.FarmID != *f.FarmID) {
			continue
		}
		out = append(out, withJoins(st, s))
	}
	return out
}

func sortByDateDesc(list []*entity.Shipment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
}
