package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleCols = `id, codigo_veiculo, placa, placa_carreta, modelo, tipo_veiculo, capacidade_toneladas, km_atual,
	ano_fabricacao, motorista_fixo_id, proprietario_tipo, status, validade_licenciamento, validade_seguro,
	created_at, updated_at`

// VehicleRepo implementação de VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create insere o veículo com código FROTA-NNN. Placa repetida → ErrDuplicate.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	id, err := nextID(ctx, r.q, "frota")
	if err != nil {
		return err
	}
	v.ID = id
	v.Code = freight.SeqCode(freight.PrefixVehicle, id)
	query := `
		INSERT INTO frota (id, codigo_veiculo, placa, placa_carreta, modelo, tipo_veiculo, capacidade_toneladas,
			km_atual, ano_fabricacao, motorista_fixo_id, proprietario_tipo, status, validade_licenciamento,
			validade_seguro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		v.ID, v.Code, v.Plate, v.TrailerPlate, v.Model, v.Type, v.CapacityTons,
		v.Odometer, v.ManufactureYear, v.FixedDriverID, v.OwnerType, v.Status, v.LicensingExpiry,
		v.InsuranceExpiry,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return mapError("inserir veículo", err)
	}
	return nil
}

func (r *VehicleRepo) GetByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleCols+` FROM frota WHERE id = $1`, id)
}

// GetByFixedDriver veículo vinculado ao motorista (motorista_fixo_id), se houver.
func (r *VehicleRepo) GetByFixedDriver(ctx context.Context, driverID int64) (*entity.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleCols+` FROM frota WHERE motorista_fixo_id = $1 ORDER BY id LIMIT 1`, driverID)
}

func (r *VehicleRepo) getOne(ctx context.Context, query string, arg int64) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("buscar veículo", err)
	}
	return v, nil
}

func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	query := `
		UPDATE frota SET placa = $2, placa_carreta = $3, modelo = $4, tipo_veiculo = $5, capacidade_toneladas = $6,
			km_atual = $7, ano_fabricacao = $8, motorista_fixo_id = $9, proprietario_tipo = $10, status = $11,
			validade_licenciamento = $12, validade_seguro = $13, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.Plate, v.TrailerPlate, v.Model, v.Type, v.CapacityTons,
		v.Odometer, v.ManufactureYear, v.FixedDriverID, v.OwnerType, v.Status,
		v.LicensingExpiry, v.InsuranceExpiry,
	)
	if err != nil {
		return mapError("atualizar veículo", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("veículo %d: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *VehicleRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM frota WHERE id = $1`, id)
	if err != nil {
		return mapError("excluir veículo", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("veículo %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *VehicleRepo) List(ctx context.Context, f entity.VehicleFilter, limit, offset int) ([]*entity.Vehicle, error) {
	w := vehicleWhere(f)
	query := `SELECT ` + vehicleCols + ` FROM frota` + w.sql() + ` ORDER BY placa` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("listar frota", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan veículo: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VehicleRepo) Count(ctx context.Context, f entity.VehicleFilter) (int64, error) {
	w := vehicleWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM frota`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("contar frota", err)
	}
	return n, nil
}

func vehicleWhere(f entity.VehicleFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	if f.Type != nil {
		w.add("upper(tipo_veiculo) = upper($%d)", *f.Type)
	}
	return w
}

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(&v.ID, &v.Code, &v.Plate, &v.TrailerPlate, &v.Model, &v.Type, &v.CapacityTons, &v.Odometer,
		&v.ManufactureYear, &v.FixedDriverID, &v.OwnerType, &v.Status, &v.LicensingExpiry, &v.InsuranceExpiry,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
