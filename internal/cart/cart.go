package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/money"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

// Item is the read-only view of a purchasable catalog item. The catalog
// collaborator owns the data; this subsystem only prices it.
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LineItem is one gateway-ready cart entry. Quantity is always "1": the
// marketplace sells one image license per item per checkout.
type LineItem struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

// Aggregate turns catalog items into gateway line items plus the formatted
// cart total. The total is summed in decimal arithmetic over the raw prices
// before any formatting, so per-item rounding never compounds.
func Aggregate(items []Item) ([]LineItem, string, error) {
	if len(items) == 0 {
		return nil, "", ErrEmptyCart
	}

	lineItems := make([]LineItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		price, err := money.Format(item.Price)
		if err != nil {
			return nil, "", err
		}
		lineItems = append(lineItems, LineItem{
			Quantity: "1",
			Name:     item.Name,
			Price:    price,
			Currency: money.Currency,
		})
		total = total.Add(decimal.NewFromFloat(item.Price))
	}

	formattedTotal, err := money.FormatDecimal(total)
	if err != nil {
		return nil, "", err
	}

	return lineItems, formattedTotal, nil
}
