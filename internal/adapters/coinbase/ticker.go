package coinbase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// TickerPrice obtiene el precio del último trade de un producto
// vía GET /products/{id}/ticker.
func (c *Client) TickerPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	var resp rawTicker
	if err := c.get(ctx, c.publicLimiter, "/products/"+productID+"/ticker", &resp); err != nil {
		return decimal.Zero, fmt.Errorf("coinbase.TickerPrice: %w", err)
	}

	price, err := decimal.NewFromString(resp.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("coinbase.TickerPrice: parse price %q: %w", resp.Price, err)
	}
	return price, nil
}
