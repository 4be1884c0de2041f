package repository

import (
	"context"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// DashboardRepository consultas de leitura do painel.
type DashboardRepository interface {
	// OperationalStats lê os números dos KPIs; today define a regularidade de CNH, licenciamento e seguro.
	OperationalStats(ctx context.Context, today time.Time) (*entity.OperationalStats, error)
	RouteStats(ctx context.Context) ([]entity.RouteStats, error)
}
