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

var _ repository.DriverRepository = (*DriverRepo)(nil)

const driverCols = `id, codigo_motorista, nome, documento, telefone, email, endereco, status, tipo, tipo_pagamento,
	chave_pix_tipo, chave_pix, banco, agencia, conta, tipo_conta, cnh_validade, receita_gerada, viagens_realizadas,
	created_at, updated_at`

// DriverRepo implementação de DriverRepository sobre PostgreSQL.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

func (r *DriverRepo) Create(ctx context.Context, d *entity.Driver) error {
	id, err := nextID(ctx, r.q, "motoristas")
	if err != nil {
		return err
	}
	d.ID = id
	d.Code = freight.YearCode(freight.PrefixDriver, time.Now(), id)
	query := `
		INSERT INTO motoristas (id, codigo_motorista, nome, documento, telefone, email, endereco, status, tipo,
			tipo_pagamento, chave_pix_tipo, chave_pix, banco, agencia, conta, tipo_conta, cnh_validade)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING receita_gerada, viagens_realizadas, created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		d.ID, d.Code, d.Name, d.Document, d.Phone, d.Email, d.Address, d.Status, d.Type,
		d.PaymentMethod, d.PixKeyType, d.PixKey, d.Bank, d.Agency, d.Account, d.AccountType, d.LicenseExpiry,
	).Scan(&d.RevenueGenerated, &d.TripsCompleted, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return mapError("inserir motorista", err)
	}
	return nil
}

func (r *DriverRepo) GetByID(ctx context.Context, id int64) (*entity.Driver, error) {
	d, err := scanDriver(r.q.QueryRow(ctx, `SELECT `+driverCols+` FROM motoristas WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("buscar motorista", err)
	}
	return d, nil
}

func (r *DriverRepo) Update(ctx context.Context, d *entity.Driver) error {
	query := `
		UPDATE motoristas SET nome = $2, documento = $3, telefone = $4, email = $5, endereco = $6, status = $7,
			tipo = $8, tipo_pagamento = $9, chave_pix_tipo = $10, chave_pix = $11, banco = $12, agencia = $13,
			conta = $14, tipo_conta = $15, cnh_validade = $16, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		d.ID, d.Name, d.Document, d.Phone, d.Email, d.Address, d.Status,
		d.Type, d.PaymentMethod, d.PixKeyType, d.PixKey, d.Bank, d.Agency,
		d.Account, d.AccountType, d.LicenseExpiry,
	)
	if err != nil {
		return mapError("atualizar motorista", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("motorista %d: %w", d.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete remove o motorista; pagamentos vinculados barram a exclusão (23503 → ErrInUse).
func (r *DriverRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM motoristas WHERE id = $1`, id)
	if err != nil {
		return mapError("excluir motorista", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("motorista %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *DriverRepo) List(ctx context.Context, f entity.DriverFilter, limit, offset int) ([]*entity.Driver, error) {
	w := driverWhere(f)
	query := `SELECT ` + driverCols + ` FROM motoristas` + w.sql() + ` ORDER BY nome, id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("listar motoristas", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan motorista: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DriverRepo) Count(ctx context.Context, f entity.DriverFilter) (int64, error) {
	w := driverWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM motoristas`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("contar motoristas", err)
	}
	return n, nil
}

func driverWhere(f entity.DriverFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	if f.Type != nil {
		w.add("tipo = $%d", *f.Type)
	}
	return w
}

func scanDriver(row pgx.Row) (*entity.Driver, error) {
	var d entity.Driver
	err := row.Scan(&d.ID, &d.Code, &d.Name, &d.Document, &d.Phone, &d.Email, &d.Address, &d.Status, &d.Type,
		&d.PaymentMethod, &d.PixKeyType, &d.PixKey, &d.Bank, &d.Agency, &d.Account, &d.AccountType,
		&d.LicenseExpiry, &d.RevenueGenerated, &d.TripsCompleted, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
