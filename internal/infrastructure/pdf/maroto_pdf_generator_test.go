package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
)

func TestPaymentReceipt_GeraPDF(t *testing.T) {
	plate := "ABC-1D23"
	key, keyType := "joao@pix.com", "email"
	p := &dto.PaymentResponse{
		ID:            1,
		Code:          "PAG-2026-001",
		DriverName:    "JOÃO SILVA",
		ShipmentCount: 1,
		TotalTonnage:  decimal.RequireFromString("10"),
		TotalAmount:   decimal.RequireFromString("1500"),
		PaymentDate:   "2026-02-23",
		Status:        "pago",
		Method:        "pix",
		Payee:         &dto.PayeeResponse{Name: "JOÃO SILVA", Method: "pix", PixKey: &key, PixKeyType: &keyType},
		Shipments: []dto.ShipmentResponse{{
			Code: "FRT-2026-001", Origin: "Fazenda F", Destination: "Porto", Date: "2026-02-20",
			VehiclePlate: &plate, Tonnage: decimal.RequireFromString("10"), Revenue: decimal.RequireFromString("1500"),
		}},
	}

	out, err := NewReceiptGenerator().PaymentReceipt(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPaymentReceipt_PagamentoNilFalha(t *testing.T) {
	_, err := NewReceiptGenerator().PaymentReceipt(nil)
	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", formatBRL(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", formatBRL(decimal.Zero))
	assert.Equal(t, "R$ -1.000.000,00", formatBRL(decimal.RequireFromString("-1000000")))
	assert.Equal(t, "23/02/2026", brDate("2026-02-23"))
	assert.Equal(t, "ontem", brDate("ontem"))
}
