// Package pdf genera la representación gráfica de una cotización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa emisora       │  N° Cotización + Fechas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Empresa + contacto                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Servicio | Descripción | Precio                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto (tasa) / TOTAL                 │
//	│  FOOTER: estado + leyenda de vigencia                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ quoting.QuotationPDFGenerator = (*MarotoQuotationPDF)(nil)

// MarotoQuotationPDF implementa quoting.QuotationPDFGenerator usando Maroto v2.
type MarotoQuotationPDF struct {
	company string
}

// NewMarotoQuotationPDF construye el generador con el nombre de la empresa emisora.
func NewMarotoQuotationPDF(company string) *MarotoQuotationPDF {
	return &MarotoQuotationPDF{company: company}
}

// GenerateQuotationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoQuotationPDF) GenerateQuotationPDF(_ context.Context, q *entity.Quotation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Quotation "+q.QuoteNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, g.company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(q.LineItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(q, g.company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa emisora (izq) y número + fechas (der).
func headerRow(q *entity.Quotation, company string) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("QUOTATION", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(q.QuoteNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+formatDate(q.QuoteDate.Format("02/01/2006"), q.QuoteDate.IsZero()), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
			text.New("Valid until: "+formatDate(q.ValidUntil.Format("02/01/2006"), q.ValidUntil.IsZero()), props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente destinatario.
func clientRow(q *entity.Quotation) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PREPARED FOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.ClientName+" · "+q.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(q.ContactNumber, "-"),
				nonEmpty(q.Email, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de servicios.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Service", 3, align.Left),
		h("Description", 5, align.Left),
		h("Price", 3, align.Right),
	)
}

// tableItemRows: una fila por línea; las gratuitas muestran "FREE".
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		price := "Rs. " + quoting.FormatAmount(it.Price)
		if it.IsFree {
			price = "FREE"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(it.Service, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(q *entity.Quotation) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Tax ("+q.TaxRate.String()+"%):", 7),
			grand("TOTAL PAYABLE:", 14),
		),
		col.New(3).Add(
			value("Rs. "+quoting.FormatAmount(q.Subtotal), 1),
			value("Rs. "+quoting.FormatAmount(q.Tax), 7),
			grand("Rs. "+quoting.FormatAmount(q.TotalPayable), 14),
		),
	)
}

// footerRow: estado y leyenda de vigencia.
func footerRow(q *entity.Quotation, company string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Status: "+string(q.Status), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(
			"This quotation is valid until the date shown above. Prices are subject to "+company+
				" terms and conditions.",
			props.Text{Size: 6.5, Color: colorGray, Top: 6},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(s string, zero bool) string {
	if zero {
		return "-"
	}
	return s
}
