package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// TotalsReconciler recálculo completo dos campos derivados.
type TotalsReconciler struct {
	acc accessor
	now func() time.Time
}

func (r *TotalsReconciler) RecomputeShipment(_ context.Context, shipmentID int64) error {
	return r.acc.write(func(st *state) error {
		recomputeShipment(st, shipmentID, r.now())
		return nil
	})
}

func (r *TotalsReconciler) RecomputeFarm(_ context.Context, farmID int64) error {
	return r.acc.write(func(st *state) error {
		recomputeFarm(st, farmID, r.now())
		return nil
	})
}

func (r *TotalsReconciler) RecomputeAllShipments(_ context.Context) (int64, error) {
	var n int64
	err := r.acc.write(func(st *state) error {
		now := r.now()
		for _, id := range sortedIDs(st.shipments) {
			recomputeShipment(st, id, now)
			n++
		}
		return nil
	})
	return n, err
}

func (r *TotalsReconciler) RecomputeAllFarms(_ context.Context) (int64, error) {
	var n int64
	err := r.acc.write(func(st *state) error {
		now := r.now()
		for _, id := range sortedIDs(st.farms) {
			recomputeFarm(st, id, now)
			n++
		}
		return nil
	})
	return n, err
}

// recomputeShipment custos = Σ valor dos custos do frete; resultado = receita - custos.
func recomputeShipment(st *state, id int64, now time.Time) {
	s, ok := st.shipments[id]
	if !ok {
		return
	}
	var costs []*entity.CostEntry
	for _, c := range st.costs {
		if c.ShipmentID == id {
			c := c
			costs = append(costs, &c)
		}
	}
	freight.ApplyCosts(&s, freight.SumCosts(costs))
	s.UpdatedAt = now
	st.shipments[id] = s
}

// recomputeFarm soma toneladas, sacas e receita dos fretes vinculados; ultimo_frete = maior data.
func recomputeFarm(st *state, id int64, now time.Time) {
	f, ok := st.farms[id]
	if !ok {
		return
	}
	var linked []*entity.Shipment
	var last *time.Time
	for _, s := range st.shipments {
		if s.FarmID == nil || *s.FarmID != id {
			continue
		}
		s := s
		linked = append(linked, &s)
		if last == nil || s.Date.After(*last) {
			d := s.Date
			last = &d
		}
	}
	totals := freight.SumFarm(linked)
	f.TotalTonnage, f.TotalSacks, f.TotalRevenue, f.LastShipment = totals.Tonnage, totals.Sacks, totals.Revenue, last
	f.UpdatedAt = now
	st.farms[id] = f
}

// ExistenceChecker responde se a linha existe na tabela.
type ExistenceChecker struct {
	acc accessor
}

func (e *ExistenceChecker) Exists(_ context.Context, table string, id int64) (bool, error) {
	var found bool
	err := e.acc.read(func(st *state) error {
		switch table {
		case repository.TableDrivers:
			_, found = st.drivers[id]
		case repository.TableVehicles:
			_, found = st.vehicles[id]
		case repository.TableFarms:
			_, found = st.farms[id]
		case repository.TableShipments:
			_, found = st.shipments[id]
		case repository.TablePayments:
			_, found = st.payments[id]
		default:
			return fmt.Errorf("exists: tabela não permitida %q", table)
		}
		return nil
	})
	return found, err
}
