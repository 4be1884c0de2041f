package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var (
	_ repository.TotalsReconciler = (*TotalsReconciler)(nil)
	_ repository.ExistenceChecker = (*ExistenceChecker)(nil)
)

// Recálculo completo dos derivados do frete a partir dos custos.
const recomputeShipmentSQL = `
	UPDATE fretes f
	SET custos = c.total, resultado = f.receita - c.total, updated_at = now()
	FROM (SELECT COALESCE(SUM(valor), 0) AS total FROM custos WHERE frete_id = $1) c
	WHERE f.id = $1`

// Recálculo completo dos totais da fazenda a partir dos fretes vinculados.
const recomputeFarmSQL = `
	UPDATE fazendas z
	SET total_toneladas = t.toneladas, total_sacas_carregadas = t.sacas, faturamento_total = t.receita,
		ultimo_frete = t.ultimo, updated_at = now()
	FROM (
		SELECT COALESCE(SUM(toneladas), 0) AS toneladas, COALESCE(SUM(quantidade_sacas), 0) AS sacas,
			COALESCE(SUM(receita), 0) AS receita, MAX(data_frete) AS ultimo
		FROM fretes WHERE fazenda_id = $1
	) t
	WHERE z.id = $1`

const recomputeAllShipmentsSQL = `
	UPDATE fretes f
	SET custos = COALESCE(c.total, 0), resultado = f.receita - COALESCE(c.total, 0), updated_at = now()
	FROM fretes base
	LEFT JOIN (SELECT frete_id, SUM(valor) AS total FROM custos GROUP BY frete_id) c ON c.frete_id = base.id
	WHERE f.id = base.id`

const recomputeAllFarmsSQL = `
	UPDATE fazendas z
	SET total_toneladas = COALESCE(t.toneladas, 0), total_sacas_carregadas = COALESCE(t.sacas, 0),
		faturamento_total = COALESCE(t.receita, 0), ultimo_frete = t.ultimo, updated_at = now()
	FROM fazendas base
	LEFT JOIN (
		SELECT fazenda_id, SUM(toneladas) AS toneladas, SUM(quantidade_sacas) AS sacas,
			SUM(receita) AS receita, MAX(data_frete) AS ultimo
		FROM fretes WHERE fazenda_id IS NOT NULL GROUP BY fazenda_id
	) t ON t.fazenda_id = base.id
	WHERE z.id = base.id`

// TotalsReconciler grava os campos derivados por recálculo completo, na transação do chamador.
type TotalsReconciler struct {
	q Querier
}

// NewTotalsReconciler constrói o reconciliador. Passar a tx da operação.
func NewTotalsReconciler(q Querier) *TotalsReconciler {
	return &TotalsReconciler{q: q}
}

func (r *TotalsReconciler) RecomputeShipment(ctx context.Context, shipmentID int64) error {
	if _, err := r.q.Exec(ctx, recomputeShipmentSQL, shipmentID); err != nil {
		return mapError(fmt.Sprintf("reconciliar frete %d", shipmentID), err)
	}
	return nil
}

func (r *TotalsReconciler) RecomputeFarm(ctx context.Context, farmID int64) error {
	if _, err := r.q.Exec(ctx, recomputeFarmSQL, farmID); err != nil {
		return mapError(fmt.Sprintf("reconciliar fazenda %d", farmID), err)
	}
	return nil
}

func (r *TotalsReconciler) RecomputeAllShipments(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, recomputeAllShipmentsSQL)
	if err != nil {
		return 0, mapError("reconciliar todos os fretes", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *TotalsReconciler) RecomputeAllFarms(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, recomputeAllFarmsSQL)
	if err != nil {
		return 0, mapError("reconciliar todas as fazendas", err)
	}
	return cmd.RowsAffected(), nil
}

// allowedTables tabelas que o ExistenceChecker aceita; o nome nunca vem do cliente.
var allowedTables = map[string]bool{
	repository.TableDrivers:   true,
	repository.TableVehicles:  true,
	repository.TableFarms:     true,
	repository.TableShipments: true,
	repository.TablePayments:  true,
}

// ExistenceChecker verifica ids referenciados antes da escrita.
type ExistenceChecker struct {
	q Querier
}

// NewExistenceChecker constrói o verificador. Passar pool ou tx (Querier).
func NewExistenceChecker(q Querier) *ExistenceChecker {
	return &ExistenceChecker{q: q}
}

func (e *ExistenceChecker) Exists(ctx context.Context, table string, id int64) (bool, error) {
	if !allowedTables[table] {
		return false, fmt.Errorf("exists: tabela não permitida %q", table)
	}
	query := `SELECT EXISTS(SELECT 1 FROM ` + pgx.Identifier{table}.Sanitize() + ` WHERE id = $1)`
	var found bool
	if err := e.q.QueryRow(ctx, query, id).Scan(&found); err != nil {
		return false, mapError("verificar "+table, err)
	}
	return found, nil
}
