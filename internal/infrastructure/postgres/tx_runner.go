package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxStarter é satisfeito por *pgxpool.Pool (e pelo pgxmock nos testes).
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	db TxStarter
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(db TxStarter) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia uma transação, executa fn com os repositórios atados à tx e faz Commit ou Rollback.
// O Rollback adiado é no-op depois de um Commit bem-sucedido.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories monta todos os repositórios sobre o mesmo Querier (pool para leituras, tx para escritas).
func NewRepositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Shipments: NewShipmentRepository(q),
		Costs:     NewCostRepository(q),
		Farms:     NewFarmRepository(q),
		Drivers:   NewDriverRepository(q),
		Vehicles:  NewVehicleRepository(q),
		Payments:  NewPaymentRepository(q),
		Totals:    NewTotalsReconciler(q),
		Exists:    NewExistenceChecker(q),
	}
}
