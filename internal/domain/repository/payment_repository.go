package repository

import (
	"context"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// PaymentRepository define o port de persistência de pagamentos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	GetByCode(ctx context.Context, code string) (*entity.Payment, error)
	// GetForUpdate bloqueia a linha do pagamento até o fim da transação.
	GetForUpdate(ctx context.Context, id int64) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f entity.PaymentFilter, limit, offset int) ([]*entity.Payment, error)
	Count(ctx context.Context, f entity.PaymentFilter) (int64, error)
	// PaidSummaryByOwner resume os fretes já pagos por proprietário.
	PaidSummaryByOwner(ctx context.Context) ([]entity.OwnerPaidSummary, error)
}
