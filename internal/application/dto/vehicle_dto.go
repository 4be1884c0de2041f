package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateVehicleRequest entrada para cadastrar um caminhão.
type CreateVehicleRequest struct {
	Plate           string      `json:"placa" validate:"required,placa"`
	TrailerPlate    *string     `json:"placa_carreta" validate:"omitempty,placa"`
	Model           *string     `json:"modelo" validate:"omitempty,max=100"`
	Type            string      `json:"tipo_veiculo" validate:"required,oneof=TRUCK TOCO CARRETA BITREM RODOTREM VUC"`
	CapacityTons    FlexDecimal `json:"capacidade_toneladas"`
	Odometer        FlexDecimal `json:"km_atual"`
	ManufactureYear *int32      `json:"ano_fabricacao" validate:"omitempty,gte=1950,lte=2100"`
	FixedDriverID   *FlexInt64  `json:"motorista_fixo_id" validate:"omitempty,gt=0"`
	OwnerType       *string     `json:"proprietario_tipo" validate:"omitempty,oneof=PROPRIO TERCEIRO AGREGADO"`
	Status          *string     `json:"status" validate:"omitempty,oneof=disponivel em_viagem manutencao inativo"`
	LicensingExpiry *string     `json:"validade_licenciamento" validate:"omitempty,datetime=2006-01-02"`
	InsuranceExpiry *string     `json:"validade_seguro" validate:"omitempty,datetime=2006-01-02"`
}

// Normalize põe tipo_veiculo e proprietario_tipo em maiúsculas antes da validação.
func (r *CreateVehicleRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	if r.OwnerType != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.OwnerType))
		r.OwnerType = &v
	}
}

// UpdateVehicleRequest campos editáveis de um caminhão.
type UpdateVehicleRequest struct {
	Plate           *string      `json:"placa" validate:"omitempty,placa"`
	TrailerPlate    *string      `json:"placa_carreta" validate:"omitempty,placa"`
	Model           *string      `json:"modelo" validate:"omitempty,max=100"`
	Type            *string      `json:"tipo_veiculo" validate:"omitempty,oneof=TRUCK TOCO CARRETA BITREM RODOTREM VUC"`
	CapacityTons    *FlexDecimal `json:"capacidade_toneladas"`
	Odometer        *FlexDecimal `json:"km_atual"`
	ManufactureYear *int32       `json:"ano_fabricacao" validate:"omitempty,gte=1950,lte=2100"`
	FixedDriverID   *FlexInt64   `json:"motorista_fixo_id" validate:"omitempty,gt=0"`
	OwnerType       *string      `json:"proprietario_tipo" validate:"omitempty,oneof=PROPRIO TERCEIRO AGREGADO"`
	Status          *string      `json:"status" validate:"omitempty,oneof=disponivel em_viagem manutencao inativo"`
	LicensingExpiry *string      `json:"validade_licenciamento" validate:"omitempty,datetime=2006-01-02"`
	InsuranceExpiry *string      `json:"validade_seguro" validate:"omitempty,datetime=2006-01-02"`
}

// Normalize como em CreateVehicleRequest.
func (r *UpdateVehicleRequest) Normalize() {
	if r.Type != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Type))
		r.Type = &v
	}
	if r.OwnerType != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.OwnerType))
		r.OwnerType = &v
	}
}

// VehicleListQuery filtros de GET /frota.
type VehicleListQuery struct {
	Status *string
	Type   *string
	Page   PageQuery
}

// VehicleResponse saída de um caminhão.
type VehicleResponse struct {
	ID              int64            `json:"id"`
	Code            string           `json:"codigo_veiculo"`
	Plate           string           `json:"placa"`
	TrailerPlate    *string          `json:"placa_carreta"`
	Model           *string          `json:"modelo"`
	Type            string           `json:"tipo_veiculo"`
	CapacityTons    *decimal.Decimal `json:"capacidade_toneladas"`
	Odometer        *decimal.Decimal `json:"km_atual"`
	ManufactureYear *int32           `json:"ano_fabricacao"`
	FixedDriverID   *int64           `json:"motorista_fixo_id"`
	OwnerType       string           `json:"proprietario_tipo"`
	Status          string           `json:"status"`
	LicensingExpiry *string          `json:"validade_licenciamento"`
	InsuranceExpiry *string          `json:"validade_seguro"`
	CreatedAt       *time.Time       `json:"created_at,omitempty"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty"`
}
