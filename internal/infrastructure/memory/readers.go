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
)

// DashboardRepository leituras do painel sobre o estado em memória.
type DashboardRepository struct {
	acc accessor
}

func (r *DashboardRepository) OperationalStats(_ context.Context, today time.Time) (*entity.OperationalStats, error) {
	day := truncateDay(today)
	out := &entity.OperationalStats{
		Revenue:         decimal.Zero,
		Costs:           decimal.Zero,
		Profit:          decimal.Zero,
		PaymentsPaid:    decimal.Zero,
		PaymentsPending: decimal.Zero,
		HarvestVolume:   decimal.Zero,
	}
	err := r.acc.read(func(st *state) error {
		for _, s := range st.shipments {
			out.Revenue = out.Revenue.Add(s.Revenue)
			out.Costs = out.Costs.Add(s.Costs)
			out.ShipmentCount++
		}
		out.Profit = out.Revenue.Sub(out.Costs)
		for _, d := range st.drivers {
			if d.Status != entity.DriverStatusActive {
				continue
			}
			out.ActiveDrivers++
			if validOn(d.LicenseExpiry, day) {
				out.RegularDrivers++
			}
		}
		for _, v := range st.vehicles {
			out.Vehicles++
			if v.Status == entity.VehicleStatusAvailable {
				out.AvailableTrucks++
			}
			if validOn(v.LicensingExpiry, day) && validOn(v.InsuranceExpiry, day) {
				out.RegularVehicles++
			}
		}
		for _, p := range st.payments {
			switch p.Status {
			case entity.PaymentStatusPaid:
				out.PaymentsPaid = out.PaymentsPaid.Add(p.TotalAmount)
			case entity.PaymentStatusPending:
				out.PaymentsPending = out.PaymentsPending.Add(p.TotalAmount)
			}
		}
		for _, f := range st.farms {
			out.HarvestVolume = out.HarvestVolume.Add(f.TotalTonnage)
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepository) RouteStats(_ context.Context) ([]entity.RouteStats, error) {
	var out []entity.RouteStats
	err := r.acc.read(func(st *state) error {
		type key struct{ origin, dest string }
		byRoute := map[key]*entity.RouteStats{}
		for _, s := range st.shipments {
			k := key{s.Origin, s.Destination}
			rs, ok := byRoute[k]
			if !ok {
				rs = &entity.RouteStats{Origin: s.Origin, Destination: s.Destination, Revenue: decimal.Zero, Costs: decimal.Zero, Profit: decimal.Zero}
				byRoute[k] = rs
			}
			rs.ShipmentCount++
			rs.Revenue = rs.Revenue.Add(s.Revenue)
			rs.Costs = rs.Costs.Add(s.Costs)
			rs.Profit = rs.Revenue.Sub(rs.Costs)
		}
		for _, rs := range byRoute {
			out = append(out, *rs)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Profit.Equal(out[j].Profit) {
				return out[i].Profit.GreaterThan(out[j].Profit)
			}
			if out[i].Origin != out[j].Origin {
				return out[i].Origin < out[j].Origin
			}
			return out[i].Destination < out[j].Destination
		})
		return nil
	})
	return out, err
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validOn: sem data conta como regular; senão a validade precisa ser hoje ou depois.
func validOn(expiry *time.Time, day time.Time) bool {
	return expiry == nil || !truncateDay(*expiry).Before(day)
}

// UserRepository usuários em memória; email é único.
type UserRepository struct {
	acc accessor
	now func() time.Time
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.acc.write(func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Email, u.Email) {
				return fmt.Errorf("email %s: %w", u.Email, domain.ErrDuplicate)
			}
		}
		now := r.now()
		u.ID = st.nextID("usuarios")
		u.CreatedAt, u.UpdatedAt = now, now
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.acc.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.acc.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
