// Package pdf renders POS sale receipts with Maroto v2.
//
// A5 page layout:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Dispensary name  │  Receipt # + Date │
//	│  ───────────────────────────────────────────  │
//	│  LOCATION: Name + address                     │
//	│  ───────────────────────────────────────────  │
//	│  TABLE: Qty | Product | Tier | Unit | Total   │
//	│  ───────────────────────────────────────────  │
//	│  TOTALS: Subtotal / TOTAL / Payment method    │
//	│  FOOTER: legal retention notice               │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	apppos "github.com/greenrail/dispensary-api/internal/application/pos"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implements pos.ReceiptGenerator using Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator builds the generator.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt renders the receipt and returns its bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	vendor *entity.Vendor,
	location *entity.Location,
	sale *entity.Sale,
	items []apppos.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Sale Receipt", true).
		WithAuthor(vendor.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(vendor, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationRow(location))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: dispensary name (left), receipt number + date (right).
func headerRow(vendor *entity.Vendor, sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(vendor.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("SALE RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New(sale.CreatedAt.Format("01/02/2006 3:04 PM"), props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// locationRow: store name and address.
func locationRow(location *entity.Location) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(location.Name, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New(nonEmpty(location.Address, "—"), props.Text{
				Size: 7, Top: 6, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: item table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Qty", 1, align.Center),
		h("Product", 5, align.Left),
		h("Tier", 2, align.Center),
		h("Unit", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: one row per sale line.
func tableItemRows(items []apppos.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				it.Item.Quantity.StringFixed(0),
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.ProductName,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.Item.TierLabel, "—"),
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				"$"+it.Item.UnitPrice.StringFixed(2),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.Item.LineTotal.StringFixed(2),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: totals block aligned right, payment method underneath.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			grandLabel("TOTAL:"),
			label("Paid by:"),
		),
		col.New(4).Add(
			value("$"+sale.Subtotal.StringFixed(2)),
			grandValue("$"+sale.Total.StringFixed(2)),
			value(strings.ToUpper(sale.PaymentMethod)),
		),
	)
}

// footerRow: regulatory retention notice.
func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Keep this receipt. Cannabis products may not be returned once they "+
				"leave the premises. For use only by adults twenty-one and older.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2, Align: align.Center},
		),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID takes the first UUID segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return "#" + strings.ToUpper(id[:i])
	}
	return "#" + id
}
