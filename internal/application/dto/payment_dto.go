package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest entrada para registrar um pagamento a um proprietário.
// metodo_pagamento vem do cadastro do motorista.
type CreatePaymentRequest struct {
	Code              *string          `json:"codigo_pagamento" validate:"omitempty,max=30"`
	DriverID          *FlexInt64       `json:"motorista_id" validate:"required,gt=0"`
	DriverName        *string          `json:"motorista_nome" validate:"omitempty,max=200"`
	Period            *string          `json:"periodo_fretes" validate:"omitempty,max=100"`
	ShipmentCount     *int64           `json:"quantidade_fretes" validate:"omitempty,gte=0"`
	IncludedShipments FlexIDList       `json:"fretes_incluidos" validate:"required,min=1"`
	TotalTonnage      *decimal.Decimal `json:"total_toneladas" validate:"omitempty,gte=0"`
	PricePerTon       *decimal.Decimal `json:"valor_por_tonelada" validate:"omitempty,gte=0"`
	TotalAmount       decimal.Decimal  `json:"valor_total" validate:"gt=0"`
	PaymentDate       string           `json:"data_pagamento" validate:"required,datetime=2006-01-02"`
	Status            *string          `json:"status" validate:"omitempty,oneof=pendente processando pago cancelado"`
	ReceiptName       *string          `json:"comprovante_nome" validate:"omitempty,max=255"`
	ReceiptURL        *string          `json:"comprovante_url" validate:"omitempty,max=500"`
	Notes             *string          `json:"observacoes"`
}

// UpdatePaymentRequest campos editáveis. fretes_incluidos e metodo_pagamento não são editáveis.
type UpdatePaymentRequest struct {
	Period      *string          `json:"periodo_fretes" validate:"omitempty,max=100"`
	PricePerTon *decimal.Decimal `json:"valor_por_tonelada" validate:"omitempty,gte=0"`
	TotalAmount *decimal.Decimal `json:"valor_total" validate:"omitempty,gt=0"`
	PaymentDate *string          `json:"data_pagamento" validate:"omitempty,datetime=2006-01-02"`
	Status      *string          `json:"status" validate:"omitempty,oneof=pendente processando pago cancelado"`
	ReceiptName *string          `json:"comprovante_nome" validate:"omitempty,max=255"`
	ReceiptURL  *string          `json:"comprovante_url" validate:"omitempty,max=500"`
	Notes       *string          `json:"observacoes"`

	// Method só existe para rejeitar a tentativa de alteração.
	Method *string `json:"metodo_pagamento"`
}

// PaymentListQuery filtros de GET /pagamentos.
type PaymentListQuery struct {
	DriverID *int64
	Status   *string
	Page     PageQuery
}

// PayeeResponse dados de recebimento do favorecido.
type PayeeResponse struct {
	Name        string  `json:"nome"`
	Document    *string `json:"documento,omitempty"`
	Method      string  `json:"tipo_pagamento"`
	PixKeyType  *string `json:"chave_pix_tipo,omitempty"`
	PixKey      *string `json:"chave_pix,omitempty"`
	Bank        *string `json:"banco,omitempty"`
	Agency      *string `json:"agencia,omitempty"`
	Account     *string `json:"conta,omitempty"`
	AccountType *string `json:"tipo_conta,omitempty"`
}

// PaymentResponse saída de um pagamento.
type PaymentResponse struct {
	ID                int64              `json:"id"`
	Code              string             `json:"codigo_pagamento"`
	DriverID          int64              `json:"motorista_id"`
	DriverName        string             `json:"motorista_nome"`
	Period            *string            `json:"periodo_fretes"`
	ShipmentCount     int64              `json:"quantidade_fretes"`
	IncludedShipments string             `json:"fretes_incluidos"`
	TotalTonnage      decimal.Decimal    `json:"total_toneladas"`
	PricePerTon       *decimal.Decimal   `json:"valor_por_tonelada"`
	TotalAmount       decimal.Decimal    `json:"valor_total"`
	PaymentDate       string             `json:"data_pagamento"`
	Status            string             `json:"status"`
	Method            string             `json:"metodo_pagamento"`
	ReceiptName       *string            `json:"comprovante_nome"`
	ReceiptURL        *string            `json:"comprovante_url"`
	ReceiptUploadedAt *time.Time         `json:"comprovante_data_upload"`
	Notes             *string            `json:"observacoes"`
	Payee             *PayeeResponse     `json:"favorecido,omitempty"`
	Shipments         []ShipmentResponse `json:"fretes,omitempty"`
	CreatedAt         *time.Time         `json:"created_at,omitempty"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty"`
}

// OwnerPaidSummaryResponse resumo dos fretes pagos por proprietário.
type OwnerPaidSummaryResponse struct {
	DriverID      int64           `json:"motorista_id"`
	DriverName    string          `json:"motorista_nome"`
	ShipmentCount int64           `json:"quantidade_fretes"`
	TotalTonnage  decimal.Decimal `json:"total_toneladas"`
	TotalAmount   decimal.Decimal `json:"valor_total"`
}

// PaymentListResponse itens da página mais o resumo por proprietário.
type PaymentListResponse struct {
	Items        []PaymentResponse          `json:"pagamentos"`
	OwnerSummary []OwnerPaidSummaryResponse `json:"resumo_fretes_por_proprietario"`
}
