package notify

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// FormatStatMessage renderiza el cuerpo de la notificación de un stat:
// cost basis, returns, balance y precio actual, una línea por campo.
func FormatStatMessage(stat domain.ProductStat) (string, error) {
	if err := stat.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "over all cost: %s\n", usd(stat.OverallCost))
	fmt.Fprintf(&sb, "total returns: %s\n", usd(stat.TotalReturns))
	fmt.Fprintf(&sb, "balance: %s\n", stat.Balance.String())
	fmt.Fprintf(&sb, "current price: %s", usd(stat.CurrentPrice))
	return sb.String(), nil
}

// usd formatea un monto decimal como USD, redondeado al centavo.
func usd(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
