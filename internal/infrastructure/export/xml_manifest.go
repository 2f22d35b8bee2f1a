// Package export builds the compliance inventory manifest: an XML document
// regulators accept for periodic stock reporting. One Product element per
// aggregated product, with the per-location breakdown nested inside.
package export

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/stock"
)

const manifestNamespace = "urn:cannabis:inventory:manifest:1.0"

// ManifestBuilder renders inventory snapshots as XML.
type ManifestBuilder struct{}

// NewManifestBuilder builds the exporter.
func NewManifestBuilder() *ManifestBuilder { return &ManifestBuilder{} }

// Build serializes the snapshot for one vendor. GeneratedAt is taken as a
// parameter so exports are reproducible in tests.
func (b *ManifestBuilder) Build(vendor *entity.Vendor, snapshot []stock.ProductStock, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("InventoryManifest")
	root.CreateAttr("xmlns", manifestNamespace)
	root.CreateAttr("generatedAt", generatedAt.UTC().Format(time.RFC3339))

	licensee := root.CreateElement("Licensee")
	licensee.CreateElement("Name").SetText(vendor.Name)
	licensee.CreateElement("Identifier").SetText(vendor.Slug)

	products := root.CreateElement("Products")
	products.CreateAttr("count", fmt.Sprintf("%d", len(snapshot)))
	for _, ps := range snapshot {
		p := products.CreateElement("Product")
		p.CreateAttr("sku", ps.SKU)
		p.CreateElement("Name").SetText(ps.ProductName)
		p.CreateElement("Category").SetText(ps.Category)
		p.CreateElement("TotalQuantity").SetText(ps.Total.String())
		p.CreateElement("StockStatus").SetText(string(ps.Status))

		locs := p.CreateElement("Locations")
		for _, l := range ps.Locations {
			le := locs.CreateElement("Location")
			le.CreateAttr("id", l.LocationID)
			le.CreateElement("Name").SetText(l.LocationName)
			le.CreateElement("Quantity").SetText(l.Quantity.String())
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serialize manifest: %w", err)
	}
	return out, nil
}
