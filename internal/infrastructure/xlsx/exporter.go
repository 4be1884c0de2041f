// Package xlsx exporta fretes e pendências de pagamento em planilhas Excel.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
)

var _ ports.SpreadsheetExporter = (*Exporter)(nil)

// ContentType MIME das planilhas geradas.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxSheetName = 31

var shipmentHeaders = []string{
	"Código", "Data", "Origem", "Destino", "Motorista", "Placa", "Fazenda",
	"Mercadoria", "Sacas", "Toneladas", "R$/ton", "Receita", "Custos", "Resultado", "Pago",
}

var shipmentWidths = []float64{15, 12, 22, 22, 24, 11, 22, 14, 8, 11, 10, 14, 12, 14, 6}

// Exporter gera os arquivos com excelize.
type Exporter struct{}

// NewExporter constrói o exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Shipments gera uma planilha "Fretes" com uma linha por frete.
func (e *Exporter) Shipments(rows []dto.ShipmentResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Fretes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: renomear aba: %w", err)
	}
	if err := writeShipmentSheet(f, sheet, rows); err != nil {
		return nil, err
	}
	return write(f)
}

// PendingByOwner gera uma aba por proprietário com os fretes não pagos e o total ao final.
func (e *Exporter) PendingByOwner(groups []dto.PendingOwnerResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if len(groups) == 0 {
		if err := f.SetSheetName("Sheet1", "Pendentes"); err != nil {
			return nil, fmt.Errorf("xlsx: renomear aba: %w", err)
		}
		if err := f.SetCellValue("Pendentes", "A1", "Nenhum frete pendente"); err != nil {
			return nil, fmt.Errorf("xlsx: escrever: %w", err)
		}
		return write(f)
	}

	used := make(map[string]bool, len(groups))
	for i, g := range groups {
		sheet := sheetName(g.Name, g.OwnerID, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("xlsx: renomear aba: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("xlsx: criar aba %q: %w", sheet, err)
		}
		if err := writeShipmentSheet(f, sheet, g.Shipments); err != nil {
			return nil, err
		}

		// Linha de totais logo abaixo dos fretes.
		last := len(g.Shipments) + 3
		totals := map[string]any{
			"A": "TOTAL " + g.Name,
			"I": fmt.Sprintf("%d fretes", g.ShipmentCount),
			"J": num(g.TotalTonnage),
			"L": num(g.TotalRevenue),
			"M": num(g.TotalCosts),
			"N": num(g.TotalResult),
		}
		for colName, v := range totals {
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName, last), v); err != nil {
				return nil, fmt.Errorf("xlsx: escrever totais: %w", err)
			}
		}
	}
	f.SetActiveSheet(0)
	return write(f)
}

func writeShipmentSheet(f *excelize.File, sheet string, rows []dto.ShipmentResponse) error {
	for i, h := range shipmentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: cabeçalho: %w", err)
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(shipmentHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	for idx, s := range rows {
		values := []any{
			s.Code, s.Date, s.Origin, s.Destination, str(s.DriverName), str(s.VehiclePlate), str(s.FarmName),
			str(s.Commodity), s.Sacks, num(s.Tonnage), num(s.PricePerTon), num(s.Revenue), num(s.Costs), num(s.Result),
			paid(s.PaymentID),
		}
		cell, _ := excelize.CoordinatesToCellName(1, idx+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: linha %d: %w", idx+2, err)
		}
	}

	for i, w := range shipmentWidths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, colName, colName, w)
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: gravar arquivo: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName limpa caracteres proibidos, corta em 31 e desambigua nomes repetidos.
func sheetName(name string, id int64, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = fmt.Sprintf("Proprietario %d", id)
	}
	clean = truncate(clean, maxSheetName)
	if used[strings.ToLower(clean)] {
		suffix := fmt.Sprintf(" #%d", id)
		clean = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(clean)] = true
	return clean
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func paid(id *int64) string {
	if id != nil {
		return "Sim"
	}
	return "Não"
}
