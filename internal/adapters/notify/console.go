package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// Console implementa ports.Notifier escribiendo a un io.Writer, y además
// renderiza la tabla completa de stats para el modo print del CLI.
type Console struct {
	out io.Writer
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Notify escribe el mismo resumen que iría a la notificación de escritorio.
func (c *Console) Notify(_ context.Context, stat domain.ProductStat) error {
	if stat.Product == "" {
		return &domain.MissingStatFieldError{Field: "product"}
	}

	msg, err := FormatStatMessage(stat)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "[%s] %s\n%s\n", time.Now().Format("15:04:05"), stat.Product, msg)
	return nil
}

// PrintStats imprime la tabla de stats por producto con un resumen del
// portfolio al final.
func (c *Console) PrintStats(stats []domain.ProductStat) {
	if len(stats) == 0 {
		fmt.Fprintln(c.out, "no product stats to report")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Product", "Cost Basis", "Returns", "Balance", "Price", "Avg Price", "Avg Sold", "Avg Bought")

	var totalCost, totalReturns decimal.Decimal
	for _, s := range stats {
		totalCost = totalCost.Add(s.OverallCost)
		totalReturns = totalReturns.Add(s.TotalReturns)

		table.Append(
			s.Product,
			usd(s.OverallCost),
			usd(s.TotalReturns),
			s.Balance.String(),
			usd(s.CurrentPrice),
			usd(s.AveragePrice),
			usd(s.AveragePriceSoldAt),
			usd(s.AveragePriceBoughtAt),
		)
	}

	table.Render()

	fmt.Fprintf(c.out, "  %d products — cost basis: %s  returns: %s\n",
		len(stats), usd(totalCost), usd(totalReturns))
}
