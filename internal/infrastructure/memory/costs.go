package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// CostEntryRepository custos em memória.
type CostEntryRepository struct {
	acc accessor
	now func() time.Time
}

func (r *CostEntryRepository) Create(_ context.Context, c *entity.CostEntry) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.shipments[c.ShipmentID]; !ok {
			return fmt.Errorf("frete %d: %w", c.ShipmentID, domain.ErrNotFound)
		}
		now := r.now()
		c.ID = st.nextID("custos")
		c.CreatedAt, c.UpdatedAt = now, now
		st.costs[c.ID] = *c
		return nil
	})
}

func (r *CostEntryRepository) GetByID(_ context.Context, id int64) (*entity.CostEntry, error) {
	var out *entity.CostEntry
	err := r.acc.read(func(st *state) error {
		if c, ok := st.costs[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CostEntryRepository) GetForUpdate(ctx context.Context, id int64) (*entity.CostEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *CostEntryRepository) Update(_ context.Context, c *entity.CostEntry) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.costs[c.ID]
		if !ok {
			return fmt.Errorf("custo %d: %w", c.ID, domain.ErrNotFound)
		}
		next := *c
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = r.now()
		st.costs[c.ID] = next
		return nil
	})
}

func (r *CostEntryRepository) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.costs[id]; !ok {
			return fmt.Errorf("custo %d: %w", id, domain.ErrNotFound)
		}
		delete(st.costs, id)
		return nil
	})
}

func (r *CostEntryRepository) DeleteByShipment(_ context.Context, shipmentID int64) error {
	return r.acc.write(func(st *state) error {
		for id, c := range st.costs {
			if c.ShipmentID == shipmentID {
				delete(st.costs, id)
			}
		}
		return nil
	})
}

func (r *CostEntryRepository) List(_ context.Context, f entity.CostFilter, limit, offset int) ([]*entity.CostEntry, error) {
	var out []*entity.CostEntry
	err := r.acc.read(func(st *state) error {
		list := filterCosts(st, f)
		sort.Slice(list, func(i, j int) bool {
			if !list[i].Date.Equal(list[j].Date) {
				return list[i].Date.After(list[j].Date)
			}
			return list[i].ID > list[j].ID
		})
		out = paginate(list, limit, offset)
		return nil
	})
	return out, err
}

func (r *CostEntryRepository) Count(_ context.Context, f entity.CostFilter) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		n = int64(len(filterCosts(st, f)))
		return nil
	})
	return n, err
}

func filterCosts(st *state, f entity.CostFilter) []*entity.CostEntry {
	var out []*entity.CostEntry
	for _, c := range st.costs {
		if f.ShipmentID != nil && c.ShipmentID != *f.ShipmentID {
			continue
		}
		if f.Type != nil && c.Type != *f.Type {
			continue
		}
		c := c
		out = append(out, &c)
	}
	return out
}
