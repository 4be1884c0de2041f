package repository

import (
	"context"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// DriverRepository define o port de persistência de motoristas.
type DriverRepository interface {
	Create(ctx context.Context, d *entity.Driver) error
	GetByID(ctx context.Context, id int64) (*entity.Driver, error)
	Update(ctx context.Context, d *entity.Driver) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f entity.DriverFilter, limit, offset int) ([]*entity.Driver, error)
	Count(ctx context.Context, f entity.DriverFilter) (int64, error)
}
