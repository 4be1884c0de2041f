package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var _ repository.CostEntryRepository = (*CostRepo)(nil)

const costCols = `id, frete_id, tipo, descricao, valor, data, comprovante, observacoes, motorista, caminhao,
	rota, litros, tipo_combustivel, created_at, updated_at`

// CostRepo implementação de CostEntryRepository sobre PostgreSQL.
type CostRepo struct {
	q Querier
}

// NewCostRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCostRepository(q Querier) *CostRepo {
	return &CostRepo{q: q}
}

func (r *CostRepo) Create(ctx context.Context, c *entity.CostEntry) error {
	query := `
		INSERT INTO custos (frete_id, tipo, descricao, valor, data, comprovante, observacoes, motorista, caminhao,
			rota, litros, tipo_combustivel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		c.ShipmentID, c.Type, c.Description, c.Amount, c.Date, c.HasReceipt, c.Notes, c.Driver, c.Vehicle,
		c.Route, c.Liters, c.FuelType,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapError("inserir custo", err)
	}
	return nil
}

func (r *CostRepo) GetByID(ctx context.Context, id int64) (*entity.CostEntry, error) {
	c, err := scanCost(r.q.QueryRow(ctx, `SELECT `+costCols+` FROM custos WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("buscar custo", err)
	}
	return c, nil
}

func (r *CostRepo) GetForUpdate(ctx context.Context, id int64) (*entity.CostEntry, error) {
	c, err := scanCost(r.q.QueryRow(ctx, `SELECT `+costCols+` FROM custos WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("bloquear custo", err)
	}
	return c, nil
}

// Update grava todos os campos, inclusive frete_id (mover custo de frete).
func (r *CostRepo) Update(ctx context.Context, c *entity.CostEntry) error {
	query := `
		UPDATE custos SET frete_id = $2, tipo = $3, descricao = $4, valor = $5, data = $6, comprovante = $7,
			observacoes = $8, motorista = $9, caminhao = $10, rota = $11, litros = $12, tipo_combustivel = $13,
			updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ShipmentID, c.Type, c.Description, c.Amount, c.Date, c.HasReceipt,
		c.Notes, c.Driver, c.Vehicle, c.Route, c.Liters, c.FuelType,
	)
	if err != nil {
		return mapError("atualizar custo", err)
	}
	return nil
}

func (r *CostRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM custos WHERE id = $1`, id); err != nil {
		return mapError("excluir custo", err)
	}
	return nil
}

func (r *CostRepo) DeleteByShipment(ctx context.Context, shipmentID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM custos WHERE frete_id = $1`, shipmentID); err != nil {
		return mapError("excluir custos do frete", err)
	}
	return nil
}

func (r *CostRepo) List(ctx context.Context, f entity.CostFilter, limit, offset int) ([]*entity.CostEntry, error) {
	w := costWhere(f)
	query := `SELECT ` + costCols + ` FROM custos` + w.sql() + ` ORDER BY data DESC, id DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("listar custos", err)
	}
	defer rows.Close()
	var list []*entity.CostEntry
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custo: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CostRepo) Count(ctx context.Context, f entity.CostFilter) (int64, error) {
	w := costWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM custos`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("contar custos", err)
	}
	return n, nil
}

func costWhere(f entity.CostFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ShipmentID != nil {
		w.add("frete_id = $%d", *f.ShipmentID)
	}
	if f.Type != nil {
		w.add("tipo = $%d", *f.Type)
	}
	return w
}

func scanCost(row pgx.Row) (*entity.CostEntry, error) {
	var c entity.CostEntry
	err := row.Scan(&c.ID, &c.ShipmentID, &c.Type, &c.Description, &c.Amount, &c.Date, &c.HasReceipt, &c.Notes,
		&c.Driver, &c.Vehicle, &c.Route, &c.Liters, &c.FuelType, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
