package repository

import (
	"context"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// VehicleRepository define o port de persistência da frota.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id int64) (*entity.Vehicle, error)
	GetByFixedDriver(ctx context.Context, driverID int64) (*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f entity.VehicleFilter, limit, offset int) ([]*entity.Vehicle, error)
	Count(ctx context.Context, f entity.VehicleFilter) (int64, error)
}
