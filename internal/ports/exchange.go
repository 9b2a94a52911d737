package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// FillLister obtiene los fills históricos de un producto.
type FillLister interface {
	// ListFills devuelve todos los fills del producto, completamente
	// materializados. Pagina automáticamente hasta agotar los resultados.
	ListFills(ctx context.Context, productID string) ([]domain.Fill, error)
}

// TickerReader obtiene el precio actual de un producto.
type TickerReader interface {
	TickerPrice(ctx context.Context, productID string) (decimal.Decimal, error)
}

// AccountReader obtiene los balances de la cuenta por moneda.
type AccountReader interface {
	ListAccountBalances(ctx context.Context) ([]domain.AccountBalance, error)
}

// StatsComputer calcula los stats agregados por producto. Es la capacidad
// que el CLI consume del core.
type StatsComputer interface {
	Compute(ctx context.Context, products []string, start, end time.Time) ([]domain.ProductStat, error)
}
