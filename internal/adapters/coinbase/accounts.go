package coinbase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// ListAccountBalances obtiene los balances por moneda vía GET /accounts.
func (c *Client) ListAccountBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	var resp []rawAccount
	if _, err := c.getSigned(ctx, c.privateLimiter, "/accounts", &resp); err != nil {
		return nil, fmt.Errorf("coinbase.ListAccountBalances: %w", err)
	}

	balances := make([]domain.AccountBalance, 0, len(resp))
	for _, ra := range resp {
		balance, err := decimal.NewFromString(ra.Balance)
		if err != nil {
			return nil, fmt.Errorf("coinbase.ListAccountBalances: parse balance %q for %s: %w",
				ra.Balance, ra.Currency, err)
		}
		balances = append(balances, domain.AccountBalance{
			Currency: ra.Currency,
			Balance:  balance,
		})
	}
	return balances, nil
}
