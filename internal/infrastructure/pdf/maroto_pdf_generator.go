// Package pdf genera la etiqueta imprimible de un item con Maroto v2.
//
// Layout de la página A6:
//
//	┌───────────────────────────────────────┐
//	│  Producto / Variante       │    QR     │
//	│  SKU + fullCode            │ fullCode  │
//	│  ───────────────────────────────────  │
//	│  Code128 (barcode)                    │
//	│  EAN-13                 UPC-A (texto) │
//	│  ───────────────────────────────────  │
//	│  Lote / Vencimiento                   │
//	│  Atributos marcados para etiqueta     │
//	└───────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/barcode"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

var _ inventory.LabelRenderer = (*MarotoLabelRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoLabelRenderer implementa inventory.LabelRenderer usando Maroto v2.
type MarotoLabelRenderer struct{}

// NewMarotoLabelRenderer construye el renderer.
func NewMarotoLabelRenderer() *MarotoLabelRenderer { return &MarotoLabelRenderer{} }

// RenderItemLabel genera el PDF de la etiqueta y devuelve sus bytes.
func (g *MarotoLabelRenderer) RenderItemLabel(label dto.ItemLabel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiqueta "+label.FullCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(codesRows(label)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(detailRows(label)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombres y códigos legibles (izq) y QR del fullCode (der).
func headerRow(label dto.ItemLabel) core.Row {
	return row.New(28).Add(
		col.New(8).Add(
			text.New(label.ProductName, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
			text.New(label.VariantName, props.Text{Size: 9, Top: 8}),
			text.New("SKU: "+nonEmpty(label.SKU, "—"), props.Text{Size: 7, Top: 15, Color: colorGray}),
			text.New(label.FullCode, props.Text{Style: fontstyle.Bold, Size: 8, Top: 21}),
		),
		col.New(4).Add(code.NewQr(label.FullCode, props.Rect{
			Percent: 95,
			Center:  true,
		})),
	)
}

// codesRows: barcode Code128 a todo el ancho; EAN-13 en barras y UPC-A en texto.
func codesRows(label dto.ItemLabel) []core.Row {
	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(code.NewBar(label.Barcode, props.Barcode{
			Percent: 90, Center: true,
		}))),
		row.New(4).Add(col.New(12).Add(text.New(label.Barcode, props.Text{
			Size: 6, Align: align.Center, Color: colorGray,
		}))),
	}
	if label.EANCode != "" {
		rows = append(rows, row.New(14).Add(
			col.New(7).Add(code.NewBar(label.EANCode, props.Barcode{
				Percent: 90, Type: barcode.EAN,
			})),
			col.New(5).Add(
				text.New("EAN-13 "+label.EANCode, props.Text{Size: 7, Top: 2, Align: align.Right}),
				text.New("UPC-A "+nonEmpty(label.UPCCode, "—"), props.Text{Size: 7, Top: 7, Align: align.Right}),
			),
		))
	}
	return rows
}

// detailRows: lote, vencimiento y atributos show_in_label.
func detailRows(label dto.ItemLabel) []core.Row {
	var rows []core.Row
	if label.BatchNumber != "" || label.ExpiryDate != nil {
		expiry := "—"
		if label.ExpiryDate != nil {
			expiry = label.ExpiryDate.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New("Lote: "+nonEmpty(label.BatchNumber, "—"), props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New("Vence: "+expiry, props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	for _, a := range label.Attributes {
		value := a.Value
		if a.Unit != "" {
			value += " " + a.Unit
		}
		rows = append(rows, row.New(5).Add(
			col.New(5).Add(text.New(a.Key, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray})),
			col.New(7).Add(text.New(value, props.Text{Size: 7})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
