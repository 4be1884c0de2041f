// Package ports define as portas de saída usadas pelos casos de uso.
// Os adaptadores (postgres, memória, excelize, maroto) implementam estes contratos.
package ports

import (
	"context"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação, com repositórios atrelados a ela.
// Erro de fn (ou de qualquer reconciliação) faz rollback; sucesso faz commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error
}

// SpreadsheetExporter gera planilhas a partir dos fretes já mapeados.
type SpreadsheetExporter interface {
	Shipments(rows []dto.ShipmentResponse) ([]byte, error)
	PendingByOwner(groups []dto.PendingOwnerResponse) ([]byte, error)
}

// ReceiptGenerator gera o comprovante PDF de um pagamento.
type ReceiptGenerator interface {
	PaymentReceipt(p *dto.PaymentResponse) ([]byte, error)
}

// Cache guarda respostas prontas por chave até o TTL expirar.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}
