package repository

import "context"

// TotalsReconciler recalcula campos derivados a partir das linhas de origem.
// Sempre recálculo completo (nunca deltas) dentro da transação do chamador,
// então duas chamadas seguidas sem mudança nas linhas produzem o mesmo resultado.
type TotalsReconciler interface {
	// RecomputeShipment grava custos = Σ custos.valor e resultado = receita - custos.
	RecomputeShipment(ctx context.Context, shipmentID int64) error
	// RecomputeFarm grava toneladas, sacas, faturamento e último frete a partir dos fretes vinculados.
	RecomputeFarm(ctx context.Context, farmID int64) error
	RecomputeAllShipments(ctx context.Context) (int64, error)
	RecomputeAllFarms(ctx context.Context) (int64, error)
}

// Tabelas aceitas pelo ExistenceChecker.
const (
	TableDrivers   = "motoristas"
	TableVehicles  = "frota"
	TableFarms     = "fazendas"
	TableShipments = "fretes"
	TablePayments  = "pagamentos"
)

// ExistenceChecker informa se existe a linha com o id na tabela.
type ExistenceChecker interface {
	Exists(ctx context.Context, table string, id int64) (bool, error)
}

// TxRepositories são os repositórios atrelados a uma mesma transação.
// É o handle transacional passado explicitamente aos orquestradores de escrita.
type TxRepositories struct {
	Shipments ShipmentRepository
	Costs     CostEntryRepository
	Farms     FarmRepository
	Drivers   DriverRepository
	Vehicles  VehicleRepository
	Payments  PaymentRepository
	Totals    TotalsReconciler
	Exists    ExistenceChecker
}
