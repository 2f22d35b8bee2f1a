package pos

import (
	"context"

	"github.com/greenrail/dispensary-api/internal/domain/entity"
	"github.com/greenrail/dispensary-api/internal/domain/repository"
)

// TxRunner executes a sale inside a DB transaction with every repository the
// flow touches bound to that tx: stock decrement, audit rows, the sale itself
// and the cash session increment are atomic.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		sessionRepo repository.CashSessionRepository,
	) error) error
}

// ReceiptGenerator renders a customer receipt for a completed sale.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, vendor *entity.Vendor, location *entity.Location, sale *entity.Sale, items []ReceiptLine) ([]byte, error)
}

// ReceiptLine is a sale item joined with its product name for display.
type ReceiptLine struct {
	ProductName string
	Item        entity.SaleItem
}
