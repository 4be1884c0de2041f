package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
)

// PaymentRepository pagamentos em memória.
type PaymentRepository struct {
	acc accessor
	now func() time.Time
}

func (r *PaymentRepository) Create(_ context.Context, p *entity.Payment) error {
	return r.acc.write(func(st *state) error {
		now := r.now()
		p.ID = st.nextID("pagamentos")
		if p.Code == "" {
			p.Code = freight.YearCode(freight.PrefixPayment, now, p.ID)
		}
		for _, other := range st.payments {
			if other.Code == p.Code {
				return fmt.Errorf("codigo_pagamento %s: %w", p.Code, domain.ErrDuplicate)
			}
		}
		p.CreatedAt, p.UpdatedAt = now, now
		st.payments[p.ID] = *p
		return nil
	})
}

func (r *PaymentRepository) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.acc.read(func(st *state) error {
		if p, ok := st.payments[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: Run já serializa as transações.
func (r *PaymentRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *PaymentRepository) GetByCode(_ context.Context, code string) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.acc.read(func(st *state) error {
		for _, p := range st.payments {
			if p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update preserva código, proprietário, fretes incluídos e método de pagamento.
func (r *PaymentRepository) Update(_ context.Context, p *entity.Payment) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.payments[p.ID]
		if !ok {
			return fmt.Errorf("pagamento %d: %w", p.ID, domain.ErrNotFound)
		}
		next := *p
		next.Code, next.DriverID, next.DriverName = cur.Code, cur.DriverID, cur.DriverName
		next.IncludedShipments, next.Method = cur.IncludedShipments, cur.Method
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = r.now()
		st.payments[p.ID] = next
		return nil
	})
}

func (r *PaymentRepository) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.payments[id]; !ok {
			return fmt.Errorf("pagamento %d: %w", id, domain.ErrNotFound)
		}
		delete(st.payments, id)
		return nil
	})
}

func (r *PaymentRepository) List(_ context.Context, f entity.PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.acc.read(func(st *state) error {
		out = paginate(filterPayments(st, f), limit, offset)
		return nil
	})
	return out, err
}

func (r *PaymentRepository) Count(_ context.Context, f entity.PaymentFilter) (int64, error) {
	var n int64
	err := r.acc.read(func(st *state) error {
		n = int64(len(filterPayments(st, f)))
		return nil
	})
	return n, err
}

// PaidSummaryByOwner agrupa por motorista os fretes com pagamento_id.
func (r *PaymentRepository) PaidSummaryByOwner(_ context.Context) ([]entity.OwnerPaidSummary, error) {
	var out []entity.OwnerPaidSummary
	err := r.acc.read(func(st *state) error {
		byDriver := map[int64]*entity.OwnerPaidSummary{}
		for _, s := range st.shipments {
			if s.PaymentID == nil {
				continue
			}
			sum, ok := byDriver[s.DriverID]
			if !ok {
				name := ""
				if d, found := st.drivers[s.DriverID]; found {
					name = d.Name
				} else if s.DriverName != nil {
					name = *s.DriverName
				}
				sum = &entity.OwnerPaidSummary{DriverID: s.DriverID, DriverName: name, TotalTonnage: decimal.Zero, TotalAmount: decimal.Zero}
				byDriver[s.DriverID] = sum
			}
			sum.ShipmentCount++
			sum.TotalTonnage = sum.TotalTonnage.Add(s.Tonnage)
			sum.TotalAmount = sum.TotalAmount.Add(s.Revenue)
		}
		for _, sum := range byDriver {
			out = append(out, *sum)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].DriverName != out[j].DriverName {
				return out[i].DriverName < out[j].DriverName
			}
			return out[i].DriverID < out[j].DriverID
		})
		return nil
	})
	return out, err
}

func filterPayments(st *state, f entity.PaymentFilter) []*entity.Payment {
	var out []*entity.Payment
	for _, p := range st.payments {
		if f.DriverID != nil && p.DriverID != *f.DriverID {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.After(out[j].PaymentDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
