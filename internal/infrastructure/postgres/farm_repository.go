package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var _ repository.FarmRepository = (*FarmRepo)(nil)

const farmCols = `id, codigo_fazenda, fazenda, estado, proprietario, mercadoria, variedade, safra, preco_por_tonelada,
	peso_medio_saca, total_sacas_carregadas, total_toneladas, faturamento_total, ultimo_frete, colheita_finalizada,
	created_at, updated_at`

// FarmRepo implementação de FarmRepository sobre PostgreSQL.
type FarmRepo struct {
	q Querier
}

// NewFarmRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewFarmRepository(q Querier) *FarmRepo {
	return &FarmRepo{q: q}
}

// Create insere com totais zerados e código FAZ-AAAA-NNN.
func (r *FarmRepo) Create(ctx context.Context, f *entity.Farm) error {
	id, err := nextID(ctx, r.q, "fazendas")
	if err != nil {
		return err
	}
	f.ID = id
	f.Code = freight.YearCode(freight.PrefixFarm, time.Now(), id)
	query := `
		INSERT INTO fazendas (id, codigo_fazenda, fazenda, estado, proprietario, mercadoria, variedade, safra,
			preco_por_tonelada, peso_medio_saca, colheita_finalizada)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING total_sacas_carregadas, total_toneladas, faturamento_total, created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		f.ID, f.Code, f.Name, f.State, f.Owner, f.Commodity, f.Variety, f.Harvest,
		f.PricePerTon, f.AvgSackWeight, f.HarvestFinished,
	).Scan(&f.TotalSacks, &f.TotalTonnage, &f.TotalRevenue, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return mapError("inserir fazenda", err)
	}
	return nil
}

func (r *FarmRepo) GetByID(ctx context.Context, id int64) (*entity.Farm, error) {
	f, err := scanFarm(r.q.QueryRow(ctx, `SELECT `+farmCols+` FROM fazendas WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("buscar fazenda", err)
	}
	return f, nil
}

func (r *FarmRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Farm, error) {
	f, err := scanFarm(r.q.QueryRow(ctx, `SELECT `+farmCols+` FROM fazendas WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("bloquear fazenda", err)
	}
	return f, nil
}

// Update nunca toca nos totais.
func (r *FarmRepo) Update(ctx context.Context, f *entity.Farm) error {
	query := `
		UPDATE fazendas SET fazenda = $2, estado = $3, proprietario = $4, mercadoria = $5, variedade = $6, safra = $7,
			preco_por_tonelada = $8, peso_medio_saca = $9, colheita_finalizada = $10, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.State, f.Owner, f.Commodity, f.Variety, f.Harvest,
		f.PricePerTon, f.AvgSackWeight, f.HarvestFinished,
	)
	if err != nil {
		return mapError("atualizar fazenda", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("fazenda %d: %w", f.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete remove a fazenda; os fretes ficam com fazenda_id NULL (ON DELETE SET NULL).
func (r *FarmRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM fazendas WHERE id = $1`, id)
	if err != nil {
		return mapError("excluir fazenda", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("fazenda %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *FarmRepo) List(ctx context.Context, f entity.FarmFilter, limit, offset int) ([]*entity.Farm, error) {
	w := farmWhere(f)
	query := `SELECT ` + farmCols + ` FROM fazendas` + w.sql() + ` ORDER BY fazenda, id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("listar fazendas", err)
	}
	defer rows.Close()
	var list []*entity.Farm
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fazenda: %w", err)
		}
		list = append(list, farm)
	}
	return list, rows.Err()
}

func (r *FarmRepo) Count(ctx context.Context, f entity.FarmFilter) (int64, error) {
	w := farmWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM fazendas`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("contar fazendas", err)
	}
	return n, nil
}

// Summary agrega os fretes da fazenda para o detalhe; nil quando a fazenda não existe.
func (r *FarmRepo) Summary(ctx context.Context, id int64) (*entity.FarmSummary, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM fazendas WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, mapError("resumo fazenda", err)
	}
	if !exists {
		return nil, nil
	}
	var s entity.FarmSummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(custos), 0), COALESCE(SUM(receita - custos), 0)
		FROM fretes WHERE fazenda_id = $1`, id,
	).Scan(&s.ShipmentCount, &s.OperationalCosts, &s.NetProfit)
	if err != nil {
		return nil, mapError("resumo fazenda", err)
	}
	var (
		code, origin, dest string
		date               time.Time
	)
	err = r.q.QueryRow(ctx, `
		SELECT codigo_frete, data_frete, origem, destino, toneladas
		FROM fretes WHERE fazenda_id = $1
		ORDER BY data_frete DESC, id DESC LIMIT 1`, id,
	).Scan(&code, &date, &origin, &dest, &s.LastShipmentTonnage)
	switch {
	case noRows(err):
	case err != nil:
		return nil, mapError("último frete da fazenda", err)
	default:
		s.LastShipmentCode, s.LastShipmentDate, s.LastShipmentOrigin, s.LastShipmentDest = &code, &date, &origin, &dest
	}
	return &s, nil
}

func farmWhere(f entity.FarmFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.State != nil {
		w.add("estado = $%d", *f.State)
	}
	if f.Commodity != nil {
		w.add("lower(mercadoria) = lower($%d)", *f.Commodity)
	}
	return w
}

func scanFarm(row pgx.Row) (*entity.Farm, error) {
	var f entity.Farm
	err := row.Scan(&f.ID, &f.Code, &f.Name, &f.State, &f.Owner, &f.Commodity, &f.Variety, &f.Harvest, &f.PricePerTon,
		&f.AvgSackWeight, &f.TotalSacks, &f.TotalTonnage, &f.TotalRevenue, &f.LastShipment, &f.HarvestFinished,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
