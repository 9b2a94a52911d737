package coinbase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

const (
	fillsPerPage = 100
	// Guardia contra respuestas que nunca se agotan; 100 páginas son
	// 10k fills por producto, muy por encima de cualquier cuenta normal.
	fillsMaxPages = 100
)

// ListFills obtiene todos los fills de un producto vía GET /fills,
// siguiendo el cursor CB-AFTER hasta agotar las páginas. La secuencia
// completa se materializa antes de devolverse.
func (c *Client) ListFills(ctx context.Context, productID string) ([]domain.Fill, error) {
	var all []domain.Fill
	after := ""

	for page := 0; page < fillsMaxPages; page++ {
		q := url.Values{}
		q.Set("product_id", productID)
		q.Set("limit", fmt.Sprintf("%d", fillsPerPage))
		if after != "" {
			q.Set("after", after)
		}

		var resp []rawFill
		cursor, err := c.getSigned(ctx, c.privateLimiter, "/fills?"+q.Encode(), &resp)
		if err != nil {
			return nil, fmt.Errorf("coinbase.ListFills: %w", err)
		}

		if len(resp) == 0 {
			break
		}

		fills, err := mapFills(resp)
		if err != nil {
			return nil, fmt.Errorf("coinbase.ListFills: %w", err)
		}
		all = append(all, fills...)

		slog.Debug("fetched fills page",
			"product", productID,
			"page", page,
			"count", len(resp),
			"total", len(all),
		)

		if cursor == "" || len(resp) < fillsPerPage {
			break
		}
		after = cursor
	}

	return all, nil
}
