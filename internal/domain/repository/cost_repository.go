package repository

import (
	"context"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// CostEntryRepository define o port de persistência de custos.
type CostEntryRepository interface {
	Create(ctx context.Context, c *entity.CostEntry) error
	GetByID(ctx context.Context, id int64) (*entity.CostEntry, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.CostEntry, error)
	Update(ctx context.Context, c *entity.CostEntry) error
	Delete(ctx context.Context, id int64) error
	DeleteByShipment(ctx context.Context, shipmentID int64) error
	List(ctx context.Context, f entity.CostFilter, limit, offset int) ([]*entity.CostEntry, error)
	Count(ctx context.Context, f entity.CostFilter) (int64, error)
}
