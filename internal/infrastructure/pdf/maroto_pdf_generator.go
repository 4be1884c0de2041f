// Package pdf gera o comprovante de pagamento ao proprietário em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: AgroTrack + título │ Código + data do pagamento  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FAVORECIDO: nome, documento, PIX ou dados bancários         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Data | Rota | Placa | Ton | Receita        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: fretes / toneladas / R$ por tonelada / valor pago   │
//	│  RODAPÉ: status + observações                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
)

var _ ports.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Gerador ───────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa ports.ReceiptGenerator com Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator constrói o gerador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// PaymentReceipt gera o comprovante do pagamento e devolve os bytes do PDF.
func (g *ReceiptGenerator) PaymentReceipt(p *dto.PaymentResponse) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf: pagamento ausente")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de pagamento "+p.Code, true).
		WithAuthor("AgroTrack", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(payeeRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(p.Shipments) > 0 {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableShipmentRows(p.Shipments)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(totalsRow(p))
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(p)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(p *dto.PaymentResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("AgroTrack", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestão de fretes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE PAGAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(p.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+brDate(p.PaymentDate), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// payeeRow: favorecido com PIX ou conta bancária, conforme o método.
func payeeRow(p *dto.PaymentResponse) core.Row {
	name := p.DriverName
	details := "Método: " + strings.ToUpper(p.Method)
	doc := "-"
	if fav := p.Payee; fav != nil {
		name = fav.Name
		doc = deref(fav.Document, "-")
		if fav.Method == "pix" {
			details = fmt.Sprintf("PIX (%s): %s", deref(fav.PixKeyType, "chave"), deref(fav.PixKey, "-"))
		} else {
			details = fmt.Sprintf("Banco: %s   |   Agência: %s   |   Conta: %s (%s)",
				deref(fav.Bank, "-"),
				deref(fav.Agency, "-"),
				deref(fav.Account, "-"),
				deref(fav.AccountType, "-"),
			)
		}
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New("FAVORECIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("CPF/CNPJ: "+doc, props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(details, props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Data", 2, align.Center),
		h("Rota", 3, align.Left),
		h("Placa", 1, align.Center),
		h("Ton", 1, align.Right),
		h("Receita", 3, align.Right),
	)
}

// tableShipmentRows: uma linha por frete incluído no pagamento.
func tableShipmentRows(shipments []dto.ShipmentResponse) []core.Row {
	result := make([]core.Row, 0, len(shipments))
	for _, s := range shipments {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(s.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(brDate(s.Date), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(s.Origin+" → "+s.Destination, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(deref(s.VehiclePlate, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(formatDecimal(s.Tonnage, 2), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(formatBRL(s.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(p *dto.PaymentResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	perTon := "-"
	if p.PricePerTon != nil {
		perTon = formatBRL(*p.PricePerTon)
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Fretes:"),
			label("Toneladas:"),
			label("Valor por tonelada:"),
			text.New("VALOR PAGO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%d", p.ShipmentCount)),
			value(formatDecimal(p.TotalTonnage, 2)),
			value(perTon),
			text.New(formatBRL(p.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
	)
}

func footerRows(p *dto.PaymentResponse) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Status: %s   |   Período: %s", strings.ToUpper(p.Status), deref(p.Period, "-")), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)),
	}
	if p.Notes != nil && strings.TrimSpace(*p.Notes) != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Observações: "+*p.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func deref(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

// brDate converte AAAA-MM-DD em DD/MM/AAAA; outros formatos passam intactos.
func brDate(s string) string {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return s
	}
	return s[8:10] + "/" + s[5:7] + "/" + s[0:4]
}

// formatBRL formata em reais: 1234.5 → "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	return "R$ " + formatDecimal(d, 2)
}

// formatDecimal usa ponto nos milhares e vírgula decimal.
func formatDecimal(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac == "" {
		return sign + string(buf)
	}
	return sign + string(buf) + "," + frac
}
