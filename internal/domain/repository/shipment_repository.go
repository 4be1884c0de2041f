package repository

import (
	"context"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// ShipmentRepository define o port de persistência de fretes.
// Create atribui ID e, quando vazio, o código FRT-YYYY-NNN na mesma transação.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id int64) (*entity.Shipment, error)
	// GetForUpdate bloqueia a linha (SELECT ... FOR UPDATE) até o fim da transação.
	GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error)
	ListForUpdate(ctx context.Context, ids []int64) ([]*entity.Shipment, error)
	Update(ctx context.Context, s *entity.Shipment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f entity.ShipmentFilter, limit, offset int) ([]*entity.Shipment, error)
	Count(ctx context.Context, f entity.ShipmentFilter) (int64, error)
	ListPending(ctx context.Context, driverID *int64) ([]*entity.Shipment, error)
	ListByPayment(ctx context.Context, paymentID int64) ([]*entity.Shipment, error)
	CountByDriver(ctx context.Context, driverID int64) (int64, error)
	CountByVehicle(ctx context.Context, vehicleID int64) (int64, error)
	MarkPaid(ctx context.Context, paymentID int64, ids []int64) error
	ClearPayment(ctx context.Context, paymentID int64) error
}
