package repository

import (
	"context"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// FarmRepository define o port de persistência de fazendas.
// Update nunca grava os totais; esses pertencem ao TotalsReconciler.
type FarmRepository interface {
	Create(ctx context.Context, f *entity.Farm) error
	GetByID(ctx context.Context, id int64) (*entity.Farm, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Farm, error)
	Update(ctx context.Context, f *entity.Farm) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f entity.FarmFilter, limit, offset int) ([]*entity.Farm, error)
	Count(ctx context.Context, f entity.FarmFilter) (int64, error)
	Summary(ctx context.Context, id int64) (*entity.FarmSummary, error)
}
