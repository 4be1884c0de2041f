package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas somente leitura dos indicadores do painel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository constrói o adaptador do painel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// OperationalStats lê todos os números dos KPIs em uma única consulta.
// Regular: motorista ativo com CNH sem data ou válida; veículo com licenciamento e seguro sem data ou válidos.
func (r *DashboardRepo) OperationalStats(ctx context.Context, today time.Time) (*entity.OperationalStats, error) {
	const query = `
	SELECT
	    (SELECT COALESCE(SUM(receita), 0) FROM fretes)                                   AS receita,
	    (SELECT COALESCE(SUM(custos), 0)  FROM fretes)                                   AS custos,
	    (SELECT COUNT(*)                  FROM fretes)                                   AS total_fretes,
	    (SELECT COUNT(*) FROM motoristas WHERE status = 'ativo')                         AS motoristas_ativos,
	    (SELECT COUNT(*) FROM motoristas
	      WHERE status = 'ativo' AND (cnh_validade IS NULL OR cnh_validade >= $1))       AS motoristas_regulares,
	    (SELECT COUNT(*) FROM frota)                                                     AS veiculos,
	    (SELECT COUNT(*) FROM frota WHERE status = 'disponivel')                         AS disponiveis,
	    (SELECT COUNT(*) FROM frota
	      WHERE (validade_licenciamento IS NULL OR validade_licenciamento >= $1)
	        AND (validade_seguro IS NULL OR validade_seguro >= $1))                      AS veiculos_regulares,
	    (SELECT COALESCE(SUM(valor_total), 0) FROM pagamentos WHERE status = 'pago')     AS pagos,
	    (SELECT COALESCE(SUM(valor_total), 0) FROM pagamentos WHERE status = 'pendente') AS pendentes,
	    (SELECT COALESCE(SUM(total_toneladas), 0) FROM fazendas)                         AS volume_colheita`

	var s entity.OperationalStats
	err := r.q.QueryRow(ctx, query, today.Format("2006-01-02")).Scan(
		&s.Revenue, &s.Costs, &s.ShipmentCount, &s.ActiveDrivers, &s.RegularDrivers,
		&s.Vehicles, &s.AvailableTrucks, &s.RegularVehicles, &s.PaymentsPaid, &s.PaymentsPending,
		&s.HarvestVolume,
	)
	if err != nil {
		return nil, mapError("indicadores do painel", err)
	}
	s.Profit = s.Revenue.Sub(s.Costs)
	return &s, nil
}

// RouteStats agrupa os fretes por origem/destino, maior lucro primeiro.
func (r *DashboardRepo) RouteStats(ctx context.Context) ([]entity.RouteStats, error) {
	const query = `
	SELECT origem, destino,
	       COUNT(*)                          AS total_fretes,
	       COALESCE(SUM(receita), 0)         AS receita_total,
	       COALESCE(SUM(custos), 0)          AS custos_total,
	       COALESCE(SUM(receita - custos), 0) AS lucro_total
	FROM fretes
	GROUP BY origem, destino
	ORDER BY lucro_total DESC, origem, destino`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("estatísticas de rotas", err)
	}
	defer rows.Close()
	var out []entity.RouteStats
	for rows.Next() {
		var rs entity.RouteStats
		if err := rows.Scan(&rs.Origin, &rs.Destination, &rs.ShipmentCount, &rs.Revenue, &rs.Costs, &rs.Profit); err != nil {
			return nil, fmt.Errorf("scan rota: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}
