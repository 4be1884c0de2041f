package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
)

// ── Fazendas ─────────────────────────────────────────────────────────────────

// FarmRepository fazendas em memória.
type FarmRepository struct {
	acc accessor
	now func() time.Time
}

func (r *FarmRepository) Create(_ context.Context, f *entity.Farm) error {
	return r.acc.write(func(st *state) error {
		now := r.now()
		f.ID = st.nextID("fazendas")
		f.Code = freight.YearCode(freight.PrefixFarm, now, f.ID)
		f.TotalSacks, f.TotalTonnage, f.TotalRevenue, f.LastShipment = 0, decimal.Zero, decimal.Zero, nil
		f.CreatedAt, f.UpdatedAt = now, now
		st.farms[f.ID] = *f
		return nil
	})
}

func (r *FarmRepository) GetByID(_ context.Context, id int64) (*entity.Farm, error) {
	var out *entity.Farm
	err := r.acc.read(func(st *state) error {
		if f, ok := st.farms[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *FarmRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Farm, error) {
	return r.GetByID(ctx, id)
}

// Update preserva os totais, que pertencem ao reconciliador.
func (r *FarmRepository) Update(_ context.Context, f *entity.Farm) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.farms[f.ID]
		if !ok {
			return fmt.Errorf("fazenda %d: %w", f.ID, domain.ErrNotFound)
		}
		next := *f
		next.Code = cur.Code
		next.TotalSacks, next.TotalTonnage, next.TotalRevenue, next.LastShipment =
			cur.TotalSacks, cur.TotalTonnage, cur.TotalRevenue, cur.LastShipment
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = r.now()
		st.farms[f.ID] = next
		return nil
	})
}

// Delete remove a fazenda e desvincula os fretes (ON DELETE SET NULL).
func (r *FarmRepository) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.farms[id]; !ok {
			return fmt.Errorf("fazenda %d: %w", id, domain.ErrNotFound)
		}
		delete(st.farms, id)
		for sid, s := range st.shipments {
			if s.FarmID != nil && *s.FarmID == id {
				s.FarmID = nil
				st.shipments[sid] = s
			}
		}
		return nil
	})
}

func (r *FarmRepository) List(_ context.Context, f entity.FarmFilter, limit, offset int) ([]*entity.Farm, error) {
	var out []*entity.Farm
	err := r.acc.read(func(st *state) error {
		list := filterFarms(st, f)
		out = paginate(list, limit, offset)
		return nil
	})
	return out, err
}

func (r *FarmRepository) Count(_ context.Context, f entity.FarmFilter) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		n = int64(len(filterFarms(st, f)))
		return nil
	})
	return n, err
}

// Summary agrega os fretes vinculados: quantidade, custos, lucro e o último frete.
func (r *FarmRepository) Summary(_ context.Context, id int64) (*entity.FarmSummary, error) {
	var out *entity.FarmSummary
	err := r.acc.read(func(st *state) error {
		if _, ok := st.farms[id]; !ok {
			return nil
		}
		sum := &entity.FarmSummary{OperationalCosts: decimal.Zero, NetProfit: decimal.Zero}
		var last *entity.Shipment
		for _, sid := range sortedIDs(st.shipments) {
			s := st.shipments[sid]
			if s.FarmID == nil || *s.FarmID != id {
				continue
			}
			sum.ShipmentCount++
			sum.OperationalCosts = sum.OperationalCosts.Add(s.Costs)
			sum.NetProfit = sum.NetProfit.Add(s.Revenue.Sub(s.Costs))
			if last == nil || !s.Date.Before(last.Date) {
				s := s
				last = &s
			}
		}
		if last != nil {
			code, origin, dest, date := last.Code, last.Origin, last.Destination, last.Date
			sum.LastShipmentCode, sum.LastShipmentOrigin, sum.LastShipmentDest = &code, &origin, &dest
			sum.LastShipmentDate = &date
			sum.LastShipmentTonnage = decimal.NewNullDecimal(last.Tonnage)
		}
		out = sum
		return nil
	})
	return out, err
}

func filterFarms(st *state, f entity.FarmFilter) []*entity.Farm {
	var out []*entity.Farm
	for _, farm := range st.farms {
		if f.State != nil && farm.State != *f.State {
			continue
		}
		if f.Commodity != nil && !strings.EqualFold(farm.Commodity, *f.Commodity) {
			continue
		}
		farm := farm
		out = append(out, &farm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── Motoristas ───────────────────────────────────────────────────────────────

// DriverRepository motoristas em memória.
type DriverRepository struct {
	acc accessor
	now func() time.Time
}

func (r *DriverRepository) Create(_ context.Context, d *entity.Driver) error {
	return r.acc.write(func(st *state) error {
		if d.Document != nil {
			for _, other := range st.drivers {
				if other.Document != nil && *other.Document == *d.Document {
					return fmt.Errorf("documento %s: %w", *d.Document, domain.ErrDuplicate)
				}
			}
		}
		now := r.now()
		d.ID = st.nextID("motoristas")
		d.Code = freight.YearCode(freight.PrefixDriver, now, d.ID)
		d.CreatedAt, d.UpdatedAt = now, now
		st.drivers[d.ID] = *d
		return nil
	})
}

func (r *DriverRepository) GetByID(_ context.Context, id int64) (*entity.Driver, error) {
	var out *entity.Driver
	err := r.acc.read(func(st *state) error {
		if d, ok := st.drivers[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DriverRepository) Update(_ context.Context, d *entity.Driver) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.drivers[d.ID]
		if !ok {
			return fmt.Errorf("motorista %d: %w", d.ID, domain.ErrNotFound)
		}
		if d.Document != nil {
			for id, other := range st.drivers {
				if id != d.ID && other.Document != nil && *other.Document == *d.Document {
					return fmt.Errorf("documento %s: %w", *d.Document, domain.ErrDuplicate)
				}
			}
		}
		next := *d
		next.Code = cur.Code
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = r.now()
		st.drivers[d.ID] = next
		return nil
	})
}

func (r *DriverRepository) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.drivers[id]; !ok {
			return fmt.Errorf("motorista %d: %w", id, domain.ErrNotFound)
		}
		for _, p := range st.payments {
			if p.DriverID == id {
				return domain.ErrInUse
			}
		}
		delete(st.drivers, id)
		for vid, v := range st.vehicles {
			if v.FixedDriverID != nil && *v.FixedDriverID == id {
				v.FixedDriverID = nil
				st.vehicles[vid] = v
			}
		}
		return nil
	})
}

func (r *DriverRepository) List(_ context.Context, f entity.DriverFilter, limit, offset int) ([]*entity.Driver, error) {
	var out []*entity.Driver
	err := r.acc.read(func(st *state) error {
		out = paginate(filterDrivers(st, f), limit, offset)
		return nil
	})
	return out, err
}

func (r *DriverRepository) Count(_ context.Context, f entity.DriverFilter) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		n = int64(len(filterDrivers(st, f)))
		return nil
	})
	return n, err
}

func filterDrivers(st *state, f entity.DriverFilter) []*entity.Driver {
	var out []*entity.Driver
	for _, d := range st.drivers {
		if f.Status != nil && d.Status != *f.Status {
			continue
		}
		if f.Type != nil && d.Type != *f.Type {
			continue
		}
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── Frota ────────────────────────────────────────────────────────────────────

// VehicleRepository frota em memória. placa é única.
type VehicleRepository struct {
	acc accessor
	now func() time.Time
}

func (r *VehicleRepository) Create(_ context.Context, v *entity.Vehicle) error {
	return r.acc.write(func(st *state) error {
		if err := uniquePlate(st, v); err != nil {
			return err
		}
		now := r.now()
		v.ID = st.nextID("frota")
		v.Code = freight.SeqCode(freight.PrefixVehicle, v.ID)
		v.CreatedAt, v.UpdatedAt = now, now
		st.vehicles[v.ID] = *v
		return nil
	})
}

func (r *VehicleRepository) GetByID(_ context.Context, id int64) (*entity.Vehicle, error) {
	var out *entity.Vehicle
	err := r.acc.read(func(st *state) error {
		if v, ok := st.vehicles[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *VehicleRepository) GetByFixedDriver(_ context.Context, driverID int64) (*entity.Vehicle, error) {
	var out *entity.Vehicle
	err := r.acc.read(func(st *state) error {
		for _, id := range sortedIDs(st.vehicles) {
			v := st.vehicles[id]
			if v.FixedDriverID != nil && *v.FixedDriverID == driverID {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *VehicleRepository) Update(_ context.Context, v *entity.Vehicle) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.vehicles[v.ID]
		if !ok {
			return fmt.Errorf("veículo %d: %w", v.ID, domain.ErrNotFound)
		}
		if err := uniquePlate(st, v); err != nil {
			return err
		}
		next := *v
		next.Code = cur.Code
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = r.now()
		st.vehicles[v.ID] = next
		return nil
	})
}

func (r *VehicleRepository) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.vehicles[id]; !ok {
			return fmt.Errorf("veículo %d: %w", id, domain.ErrNotFound)
		}
		delete(st.vehicles, id)
		return nil
	})
}

func (r *VehicleRepository) List(_ context.Context, f entity.VehicleFilter, limit, offset int) ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	err := r.acc.read(func(st *state) error {
		out = paginate(filterVehicles(st, f), limit, offset)
		return nil
	})
	return out, err
}

func (r *VehicleRepository) Count(_ context.Context, f entity.VehicleFilter) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		n = int64(len(filterVehicles(st, f)))
		return nil
	})
	return n, err
}

func uniquePlate(st *state, v *entity.Vehicle) error {
	for id, other := range st.vehicles {
		if id != v.ID && other.Plate == v.Plate {
			return fmt.Errorf("placa %s: %w", v.Plate, domain.ErrDuplicate)
		}
	}
	return nil
}

func filterVehicles(st *state, f entity.VehicleFilter) []*entity.Vehicle {
	var out []*entity.Vehicle
	for _, v := range st.vehicles {
		if f.Status != nil && v.Status != *f.Status {
			continue
		}
		if f.Type != nil && !strings.EqualFold(v.Type, *f.Type) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out
}
