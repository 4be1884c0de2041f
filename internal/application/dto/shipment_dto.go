package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShipmentRequest entrada para registrar um frete.
// custos, resultado e pagamento_id não são aceitos: são derivados.
type CreateShipmentRequest struct {
	Code          string           `json:"codigo_frete"`
	Origin        string           `json:"origem" validate:"required,min=2,max=120"`
	Destination   string           `json:"destino" validate:"required,min=2,max=120"`
	DriverID      *FlexInt64       `json:"motorista_id" validate:"required,gt=0"`
	DriverName    *string          `json:"motorista_nome" validate:"omitempty,max=200"`
	VehicleID     *FlexInt64       `json:"caminhao_id" validate:"required,gt=0"`
	VehiclePlate  *string          `json:"caminhao_placa" validate:"omitempty,max=10"`
	Ticket        *string          `json:"ticket" validate:"omitempty,max=60"`
	InvoiceNumber *string          `json:"numero_nota_fiscal" validate:"omitempty,max=60"`
	FarmID        *FlexInt64       `json:"fazenda_id" validate:"omitempty,gt=0"`
	FarmName      *string          `json:"fazenda_nome" validate:"omitempty,max=200"`
	Commodity     *string          `json:"mercadoria" validate:"omitempty,max=100"`
	Variety       *string          `json:"variedade" validate:"omitempty,max=100"`
	Date          string           `json:"data_frete" validate:"required,datetime=2006-01-02"`
	Sacks         int64            `json:"quantidade_sacas" validate:"gte=0"`
	Tonnage       decimal.Decimal  `json:"toneladas" validate:"gt=0"`
	PricePerTon   decimal.Decimal  `json:"valor_por_tonelada" validate:"gt=0"`
	Revenue       *decimal.Decimal `json:"receita" validate:"omitempty,gte=0"`
}

// UpdateShipmentRequest campos editáveis de um frete (apenas os enviados são aplicados).
type UpdateShipmentRequest struct {
	Origin        *string          `json:"origem" validate:"omitempty,min=2,max=120"`
	Destination   *string          `json:"destino" validate:"omitempty,min=2,max=120"`
	DriverID      *FlexInt64       `json:"motorista_id" validate:"omitempty,gt=0"`
	DriverName    *string          `json:"motorista_nome" validate:"omitempty,max=200"`
	VehicleID     *FlexInt64       `json:"caminhao_id" validate:"omitempty,gt=0"`
	VehiclePlate  *string          `json:"caminhao_placa" validate:"omitempty,max=10"`
	Ticket        *string          `json:"ticket" validate:"omitempty,max=60"`
	InvoiceNumber *string          `json:"numero_nota_fiscal" validate:"omitempty,max=60"`
	FarmID        OptionalID       `json:"fazenda_id"` // null desvincula o frete da fazenda
	FarmName      *string          `json:"fazenda_nome" validate:"omitempty,max=200"`
	Commodity     *string          `json:"mercadoria" validate:"omitempty,max=100"`
	Variety       *string          `json:"variedade" validate:"omitempty,max=100"`
	Date          *string          `json:"data_frete" validate:"omitempty,datetime=2006-01-02"`
	Sacks         *int64           `json:"quantidade_sacas" validate:"omitempty,gte=0"`
	Tonnage       *decimal.Decimal `json:"toneladas" validate:"omitempty,gt=0"`
	PricePerTon   *decimal.Decimal `json:"valor_por_tonelada" validate:"omitempty,gt=0"`
	Revenue       *decimal.Decimal `json:"receita" validate:"omitempty,gte=0"`
}

// ShipmentListQuery filtros de GET /fretes.
type ShipmentListQuery struct {
	DateFrom *string
	DateTo   *string
	DriverID *int64
	FarmID   *int64
	Page     PageQuery
}

// CreateShipmentResponse resposta da criação.
type CreateShipmentResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"codigo_frete"`
}

// ShipmentResponse saída de um frete.
type ShipmentResponse struct {
	ID            int64           `json:"id"`
	Code          string          `json:"codigo_frete"`
	Origin        string          `json:"origem"`
	Destination   string          `json:"destino"`
	DriverID      int64           `json:"motorista_id"`
	DriverName    *string         `json:"motorista_nome"`
	OwnerName     *string         `json:"proprietario_nome,omitempty"`
	OwnerType     *string         `json:"proprietario_tipo,omitempty"`
	VehicleID     int64           `json:"caminhao_id"`
	VehiclePlate  *string         `json:"caminhao_placa"`
	VehicleModel  *string         `json:"caminhao_modelo,omitempty"`
	Ticket        *string         `json:"ticket"`
	InvoiceNumber *string         `json:"numero_nota_fiscal"`
	FarmID        *int64          `json:"fazenda_id"`
	FarmName      *string         `json:"fazenda_nome"`
	Commodity     *string         `json:"mercadoria"`
	Variety       *string         `json:"variedade"`
	Date          string          `json:"data_frete"`
	Sacks         int64           `json:"quantidade_sacas"`
	Tonnage       decimal.Decimal `json:"toneladas"`
	PricePerTon   decimal.Decimal `json:"valor_por_tonelada"`
	Revenue       decimal.Decimal `json:"receita"`
	Costs         decimal.Decimal `json:"custos"`
	Result        decimal.Decimal `json:"resultado"`
	PaymentID     *int64          `json:"pagamento_id"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// PendingOwnerResponse fretes não pagos de um proprietário.
type PendingOwnerResponse struct {
	OwnerID       int64              `json:"proprietario_id"`
	Name          string             `json:"nome"`
	Type          string             `json:"tipo"`
	ReportType    string             `json:"tipo_relatorio"`
	ShipmentCount int                `json:"quantidade_fretes"`
	TotalTonnage  decimal.Decimal    `json:"total_toneladas"`
	TotalRevenue  decimal.Decimal    `json:"valor_total"`
	TotalCosts    decimal.Decimal    `json:"total_custos"`
	TotalResult   decimal.Decimal    `json:"resultado_total"`
	VehicleIDs    []int64            `json:"caminhao_ids"`
	Plates        []string           `json:"placas"`
	Shipments     []ShipmentResponse `json:"fretes"`
}
