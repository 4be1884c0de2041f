package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
)

// Querier é o subconjunto comum de *pgxpool.Pool e pgx.Tx usado pelos repositórios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE tratados.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeUndefinedColumn     = "42703"
	codeUndefinedTable      = "42P01"
)

// isUniqueViolation verifica se o erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// mapError traduz erros do Postgres para os sentinelas de domínio e envolve o resto com op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrDuplicate)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrInUse)
		case codeUndefinedColumn, codeUndefinedTable:
			return fmt.Errorf("%s: %s: %w", op, pgErr.Message, domain.ErrSchemaOutdated)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// noRows devolve true para pgx.ErrNoRows (o repositório responde nil, nil).
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// whereBuilder monta cláusulas WHERE com placeholders numerados.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page acrescenta LIMIT/OFFSET aos argumentos e devolve o trecho SQL.
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

// nextID reserva o próximo id da sequência da tabela para gerar o código na mesma transação.
func nextID(ctx context.Context, q Querier, table string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence($1, 'id'))`, table).Scan(&id)
	if err != nil {
		return 0, mapError("reservar id "+table, err)
	}
	return id, nil
}
