package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentCols = `f.id, f.codigo_frete, f.origem, f.destino, f.motorista_id, f.motorista_nome,
	f.caminhao_id, f.caminhao_placa, f.ticket, f.numero_nota_fiscal, f.fazenda_id, f.fazenda_nome,
	f.mercadoria, f.variedade, f.data_frete, f.quantidade_sacas, f.toneladas, f.valor_por_tonelada,
	f.receita, f.custos, f.resultado, f.pagamento_id, f.created_at, f.updated_at`

// shipmentJoinCols colunas de leitura vindas de motoristas e frota.
const shipmentJoinCols = `, m.nome, m.tipo, v.modelo`

const shipmentFrom = ` FROM fretes f
	LEFT JOIN motoristas m ON m.id = f.motorista_id
	LEFT JOIN frota v ON v.id = f.caminhao_id`

// ShipmentRepo implementação de ShipmentRepository sobre PostgreSQL (pool ou tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create reserva o id, gera o código FRT-AAAA-NNN quando vazio e insere o frete.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	id, err := nextID(ctx, r.q, "fretes")
	if err != nil {
		return err
	}
	s.ID = id
	if s.Code == "" {
		s.Code = freight.YearCode(freight.PrefixShipment, time.Now(), id)
	}
	query := `
		INSERT INTO fretes (id, codigo_frete, origem, destino, motorista_id, motorista_nome, caminhao_id, caminhao_placa,
			ticket, numero_nota_fiscal, fazenda_id, fazenda_nome, mercadoria, variedade, data_frete, quantidade_sacas,
			toneladas, valor_por_tonelada, receita, custos, resultado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		s.ID, s.Code, s.Origin, s.Destination, s.DriverID, s.DriverName, s.VehicleID, s.VehiclePlate,
		s.Ticket, s.InvoiceNumber, s.FarmID, s.FarmName, s.Commodity, s.Variety, s.Date, s.Sacks,
		s.Tonnage, s.PricePerTon, s.Revenue, s.Costs, s.Result,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapError("inserir frete", err)
	}
	return nil
}

// GetByID obtém o frete com os dados do proprietário e do caminhão.
func (r *ShipmentRepo) GetByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	row := r.q.QueryRow(ctx, `SELECT `+shipmentCols+shipmentJoinCols+shipmentFrom+` WHERE f.id = $1`, id)
	s, err := scanShipment(row, true)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("buscar frete", err)
	}
	return s, nil
}

// GetForUpdate bloqueia a linha do frete até o fim da transação.
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	row := r.q.QueryRow(ctx, `SELECT `+shipmentCols+` FROM fretes f WHERE f.id = $1 FOR UPDATE`, id)
	s, err := scanShipment(row, false)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, mapError("bloquear frete", err)
	}
	return s, nil
}

// ListForUpdate bloqueia os fretes em ordem de id para evitar deadlock entre transações.
func (r *ShipmentRepo) ListForUpdate(ctx context.Context, ids []int64) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+shipmentCols+` FROM fretes f WHERE f.id = ANY($1) ORDER BY f.id FOR UPDATE`, ids)
	if err != nil {
		return nil, mapError("bloquear fretes", err)
	}
	return collectShipments(rows, false)
}

// Update grava os campos editáveis. codigo, custos, resultado e pagamento_id ficam de fora.
func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	query := `
		UPDATE fretes SET origem = $2, destino = $3, motorista_id = $4, motorista_nome = $5, caminhao_id = $6,
			caminhao_placa = $7, ticket = $8, numero_nota_fiscal = $9, fazenda_id = $10, fazenda_nome = $11,
			mercadoria = $12, variedade = $13, data_frete = $14, quantidade_sacas = $15, toneladas = $16,
			valor_por_tonelada = $17, receita = $18, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Origin, s.Destination, s.DriverID, s.DriverName, s.VehicleID,
		s.VehiclePlate, s.Ticket, s.InvoiceNumber, s.FarmID, s.FarmName,
		s.Commodity, s.Variety, s.Date, s.Sacks, s.Tonnage,
		s.PricePerTon, s.Revenue,
	)
	if err != nil {
		return mapError("atualizar frete", err)
	}
	return nil
}

func (r *ShipmentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM fretes WHERE id = $1`, id); err != nil {
		return mapError("excluir frete", err)
	}
	return nil
}

// List pagina os fretes em ordem de data decrescente.
func (r *ShipmentRepo) List(ctx context.Context, f entity.ShipmentFilter, limit, offset int) ([]*entity.Shipment, error) {
	w := shipmentWhere(f)
	query := `SELECT ` + shipmentCols + shipmentJoinCols + shipmentFrom + w.sql() +
		` ORDER BY f.data_frete DESC, f.id DESC`
	if limit > 0 {
		query += w.page(limit, offset)
	}
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("listar fretes", err)
	}
	return collectShipments(rows, true)
}

func (r *ShipmentRepo) Count(ctx context.Context, f entity.ShipmentFilter) (int64, error) {
	w := shipmentWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM fretes f`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("contar fretes", err)
	}
	return n, nil
}

// ListPending fretes sem pagamento, mais antigos primeiro.
func (r *ShipmentRepo) ListPending(ctx context.Context, driverID *int64) ([]*entity.Shipment, error) {
	w := &whereBuilder{conds: []string{"f.pagamento_id IS NULL"}}
	if driverID != nil {
		w.add("f.motorista_id = $%d", *driverID)
	}
	rows, err := r.q.Query(ctx, `SELECT `+shipmentCols+shipmentJoinCols+shipmentFrom+w.sql()+
		` ORDER BY f.data_frete ASC, f.id ASC`, w.args...)
	if err != nil {
		return nil, mapError("listar fretes pendentes", err)
	}
	return collectShipments(rows, true)
}

func (r *ShipmentRepo) ListByPayment(ctx context.Context, paymentID int64) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+shipmentCols+shipmentJoinCols+shipmentFrom+
		` WHERE f.pagamento_id = $1 ORDER BY f.data_frete ASC, f.id ASC`, paymentID)
	if err != nil {
		return nil, mapError("listar fretes do pagamento", err)
	}
	return collectShipments(rows, true)
}

func (r *ShipmentRepo) CountByDriver(ctx context.Context, driverID int64) (int64, error) {
	return r.countWhere(ctx, "motorista_id", driverID)
}

func (r *ShipmentRepo) CountByVehicle(ctx context.Context, vehicleID int64) (int64, error) {
	return r.countWhere(ctx, "caminhao_id", vehicleID)
}

func (r *ShipmentRepo) countWhere(ctx context.Context, col string, id int64) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM fretes WHERE `+col+` = $1`, id).Scan(&n); err != nil {
		return 0, mapError("contar fretes por "+col, err)
	}
	return n, nil
}

// MarkPaid vincula os fretes ao pagamento.
func (r *ShipmentRepo) MarkPaid(ctx context.Context, paymentID int64, ids []int64) error {
	_, err := r.q.Exec(ctx, `UPDATE fretes SET pagamento_id = $1, updated_at = now() WHERE id = ANY($2)`, paymentID, ids)
	if err != nil {
		return mapError("marcar fretes pagos", err)
	}
	return nil
}

// ClearPayment desfaz o vínculo dos fretes com o pagamento.
func (r *ShipmentRepo) ClearPayment(ctx context.Context, paymentID int64) error {
	_, err := r.q.Exec(ctx, `UPDATE fretes SET pagamento_id = NULL, updated_at = now() WHERE pagamento_id = $1`, paymentID)
	if err != nil {
		return mapError("desvincular fretes", err)
	}
	return nil
}

func shipmentWhere(f entity.ShipmentFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.DateFrom != nil {
		w.add("f.data_frete >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("f.data_frete <= $%d", *f.DateTo)
	}
	if f.DriverID != nil {
		w.add("f.motorista_id = $%d", *f.DriverID)
	}
	if f.FarmID != nil {
		w.add("f.fazenda_id = $%d", *f.FarmID)
	}
	return w
}

func scanShipment(row pgx.Row, joins bool) (*entity.Shipment, error) {
	var s entity.Shipment
	dest := []any{
		&s.ID, &s.Code, &s.Origin, &s.Destination, &s.DriverID, &s.DriverName,
		&s.VehicleID, &s.VehiclePlate, &s.Ticket, &s.InvoiceNumber, &s.FarmID, &s.FarmName,
		&s.Commodity, &s.Variety, &s.Date, &s.Sacks, &s.Tonnage, &s.PricePerTon,
		&s.Revenue, &s.Costs, &s.Result, &s.PaymentID, &s.CreatedAt, &s.UpdatedAt,
	}
	if joins {
		dest = append(dest, &s.OwnerName, &s.OwnerType, &s.VehicleModel)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

func collectShipments(rows pgx.Rows, joins bool) ([]*entity.Shipment, error) {
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows, joins)
		if err != nil {
			return nil, fmt.Errorf("scan frete: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("ler fretes", err)
	}
	return list, nil
}
