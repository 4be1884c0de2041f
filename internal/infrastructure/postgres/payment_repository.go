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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentCols = `id, codigo_pagamento, motorista_id, motorista_nome, periodo_fretes, quantidade_fretes,
	fretes_incluidos, total_toneladas, valor_por_tonelada, valor_total, data_pagamento, status, metodo_pagamento,
	comprovante_nome, comprovante_url, comprovante_data_upload, observacoes, created_at, updated_at`

// PaymentRepo implementação de PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create insere o pagamento; código vazio vira PAG-AAAA-NNN.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	id, err := nextID(ctx, r.q, "pagamentos")
	if err != nil {
		return err
	}
	p.ID = id
	if p.Code == "" {
		p.Code = freight.YearCode(freight.PrefixPayment, time.Now(), id)
	}
	query := `
		INSERT INTO pagamentos (id, codigo_pagamento, motorista_id, motorista_nome, periodo_fretes, quantidade_fretes,
			fretes_incluidos, total_toneladas, valor_por_tonelada, valor_total, data_pagamento, status,
			metodo_pagamento, comprovante_nome, comprovante_url, comprovante_data_upload, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		p.ID, p.Code, p.DriverID, p.DriverName, p.Period, p.ShipmentCount,
		p.IncludedShipments, p.TotalTonnage, p.PricePerTon, p.TotalAmount, p.PaymentDate, p.Status,
		p.Method, p.ReceiptName, p.ReceiptURL, p.ReceiptUploadedAt, p.Notes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapError("inserir pagamento", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentCols+` FROM pagamentos WHERE id = $1`, id)
}

func (r *PaymentRepo) GetByCode(ctx context.Context, code string) (*entity.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentCols+` FROM pagamentos WHERE codigo_pagamento = $1`, code)
}

// GetForUpdate bloqueia o pagamento até o fim da transação.
func (r *PaymentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentCols+` FROM pagamentos WHERE id = $1 FOR UPDATE`, id)
}

func (r *PaymentRepo) getOne(ctx context.Context, query string, arg any) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("buscar pagamento", err)
	}
	return p, nil
}

// Update não altera código, proprietário, fretes incluídos nem método de pagamento.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE pagamentos SET periodo_fretes = $2, valor_por_tonelada = $3, valor_total = $4, data_pagamento = $5,
			status = $6, comprovante_nome = $7, comprovante_url = $8, comprovante_data_upload = $9,
			observacoes = $10, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Period, p.PricePerTon, p.TotalAmount, p.PaymentDate,
		p.Status, p.ReceiptName, p.ReceiptURL, p.ReceiptUploadedAt,
		p.Notes,
	)
	if err != nil {
		return mapError("atualizar pagamento", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pagamento %d: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pagamentos WHERE id = $1`, id)
	if err != nil {
		return mapError("excluir pagamento", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pagamento %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PaymentRepo) List(ctx context.Context, f entity.PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	w := paymentWhere(f)
	query := `SELECT ` + paymentCols + ` FROM pagamentos` + w.sql() +
		` ORDER BY data_pagamento DESC, id DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("listar pagamentos", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pagamento: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PaymentRepo) Count(ctx context.Context, f entity.PaymentFilter) (int64, error) {
	w := paymentWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM pagamentos`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("contar pagamentos", err)
	}
	return n, nil
}

// PaidSummaryByOwner agrupa por motorista os fretes que já têm pagamento_id.
func (r *PaymentRepo) PaidSummaryByOwner(ctx context.Context) ([]entity.OwnerPaidSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT f.motorista_id, COALESCE(m.nome, MAX(f.motorista_nome), ''), COUNT(*),
			COALESCE(SUM(f.toneladas), 0), COALESCE(SUM(f.receita), 0)
		FROM fretes f
		LEFT JOIN motoristas m ON m.id = f.motorista_id
		WHERE f.pagamento_id IS NOT NULL
		GROUP BY f.motorista_id, m.nome
		ORDER BY 2, 1`)
	if err != nil {
		return nil, mapError("resumo de pagos por proprietário", err)
	}
	defer rows.Close()
	var out []entity.OwnerPaidSummary
	for rows.Next() {
		var s entity.OwnerPaidSummary
		if err := rows.Scan(&s.DriverID, &s.DriverName, &s.ShipmentCount, &s.TotalTonnage, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan resumo: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func paymentWhere(f entity.PaymentFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.DriverID != nil {
		w.add("motorista_id = $%d", *f.DriverID)
	}
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	return w
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.Code, &p.DriverID, &p.DriverName, &p.Period, &p.ShipmentCount,
		&p.IncludedShipments, &p.TotalTonnage, &p.PricePerTon, &p.TotalAmount, &p.PaymentDate, &p.Status, &p.Method,
		&p.ReceiptName, &p.ReceiptURL, &p.ReceiptUploadedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
