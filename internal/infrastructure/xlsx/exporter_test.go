package xlsx

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
)

func sampleShipment(code string) dto.ShipmentResponse {
	driver := "JOÃO SILVA"
	return dto.ShipmentResponse{
		Code: code, Date: "2026-02-20", Origin: "Fazenda F", Destination: "Porto",
		DriverName: &driver, Tonnage: decimal.RequireFromString("10"),
		PricePerTon: decimal.RequireFromString("150"), Revenue: decimal.RequireFromString("1500"),
		Result: decimal.RequireFromString("1500"),
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestShipments_CabecalhoELinhas(t *testing.T) {
	data, err := NewExporter().Shipments([]dto.ShipmentResponse{sampleShipment("FRT-2026-001"), sampleShipment("FRT-2026-002")})
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"Fretes"}, f.GetSheetList())

	v, err := f.GetCellValue("Fretes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Código", v)

	v, err = f.GetCellValue("Fretes", "A3")
	require.NoError(t, err)
	assert.Equal(t, "FRT-2026-002", v)

	v, err = f.GetCellValue("Fretes", "E2")
	require.NoError(t, err)
	assert.Equal(t, "JOÃO SILVA", v)

	v, err = f.GetCellValue("Fretes", "O2")
	require.NoError(t, err)
	assert.Equal(t, "Não", v)
}

func TestPendingByOwner_UmaAbaPorProprietario(t *testing.T) {
	groups := []dto.PendingOwnerResponse{
		{OwnerID: 1, Name: "JOÃO SILVA", ShipmentCount: 1, TotalRevenue: decimal.RequireFromString("1500"),
			Shipments: []dto.ShipmentResponse{sampleShipment("FRT-2026-001")}},
		{OwnerID: 2, Name: "Transportes A/B", ShipmentCount: 1,
			Shipments: []dto.ShipmentResponse{sampleShipment("FRT-2026-002")}},
	}
	data, err := NewExporter().PendingByOwner(groups)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"JOÃO SILVA", "Transportes A-B"}, f.GetSheetList())

	v, err := f.GetCellValue("JOÃO SILVA", "A4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL JOÃO SILVA", v)
}

func TestPendingByOwner_SemGrupos(t *testing.T) {
	data, err := NewExporter().PendingByOwner(nil)
	require.NoError(t, err)

	f := open(t, data)
	v, err := f.GetCellValue("Pendentes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Nenhum frete pendente", v)
}

func TestSheetName_LimpaCortaEDesambigua(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "A-B", sheetName("A/B", 1, used))
	assert.Equal(t, "a-b #2", sheetName("a/b", 2, used))
	assert.Equal(t, "Proprietario 3", sheetName("  ", 3, used))

	long := sheetName("TRANSPORTADORA MUITO LONGA DE GRÃOS LTDA", 4, used)
	assert.Len(t, []rune(long), 31)
}
