package stats

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
	"github.com/carlso70/coinbase-pro-stats/internal/ports"
)

// quoteSuffix es el sufijo de moneda quote que llevan los product ids
// ("BTC-USD"), mientras que /accounts devuelve solo el código ("BTC").
const quoteSuffix = "-USD"

// Config contiene la configuración del agregador.
type Config struct {
	// RefreshTTL es el tiempo durante el cual el último resultado se
	// devuelve tal cual, para no quemar el rate limit de la API.
	RefreshTTL time.Duration
	// Now se inyecta para que los tests controlen el tiempo.
	Now func() time.Time
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		RefreshTTL: 30 * time.Second,
		Now:        time.Now,
	}
}

// Aggregator calcula stats de cost basis por producto a partir de los
// fills del exchange, con un cache TTL sobre la propia instancia.
//
// El cache se indexa solo por tiempo: dentro del TTL la lista anterior se
// devuelve tal cual aunque cambien los productos o el rango pedido. Es una
// limitación deliberadamente conservada del comportamiento original.
//
// No es seguro para uso concurrente: el check-then-set sobre
// (lastCalculated, lastStats) necesitaría exclusión mutua.
type Aggregator struct {
	cfg      Config
	fills    ports.FillLister
	ticker   ports.TickerReader
	accounts ports.AccountReader

	lastCalculated time.Time
	lastStats      []domain.ProductStat
}

// New crea un Aggregator con todas las dependencias inyectadas.
func New(cfg Config, fills ports.FillLister, ticker ports.TickerReader, accounts ports.AccountReader) *Aggregator {
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultConfig().RefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{
		cfg:      cfg,
		fills:    fills,
		ticker:   ticker,
		accounts: accounts,
	}
}

// Compute devuelve un ProductStat por producto, en el orden de entrada.
// Un fallo en cualquier producto aborta la petición completa y deja el
// cache intacto; ambos campos del cache se reemplazan juntos al final.
func (a *Aggregator) Compute(ctx context.Context, products []string, start, end time.Time) ([]domain.ProductStat, error) {
	if stats, ok := a.cached(); ok {
		slog.Debug("stats cache hit", "age", a.cfg.Now().Sub(a.lastCalculated).Round(time.Millisecond))
		return stats, nil
	}

	newStats := make([]domain.ProductStat, 0, len(products))
	for _, product := range products {
		stat, err := a.computeProduct(ctx, product, start, end)
		if err != nil {
			return nil, err
		}
		newStats = append(newStats, stat)
	}

	a.lastCalculated = a.cfg.Now().UTC()
	a.lastStats = newStats
	return newStats, nil
}

// cached devuelve el último resultado si sigue dentro del TTL.
func (a *Aggregator) cached() ([]domain.ProductStat, bool) {
	if a.lastCalculated.IsZero() || a.lastStats == nil {
		return nil, false
	}
	if a.cfg.Now().Sub(a.lastCalculated) >= a.cfg.RefreshTTL {
		return nil, false
	}
	return a.lastStats, true
}

// computeProduct hace fetch → filter → accumulate para un solo producto.
func (a *Aggregator) computeProduct(ctx context.Context, product string, start, end time.Time) (domain.ProductStat, error) {
	fills, err := a.fills.ListFills(ctx, product)
	if err != nil {
		return domain.ProductStat{}, &domain.AdapterError{Op: "list fills", Product: product, Err: err}
	}

	var (
		overallCost      decimal.Decimal
		totalPrice       decimal.Decimal
		totalPriceSold   decimal.Decimal
		totalPriceBought decimal.Decimal
		fillsCt          int64
		buysCt           int64
		sellsCt          int64
	)

	for _, fill := range fills {
		if !fill.InRange(start, end) {
			slog.Debug("fill outside range", "product", product, "created_at", fill.CreatedAt)
			continue
		}
		if !fill.Side.IsKnown() {
			slog.Debug("fill with unknown side", "product", product, "side", string(fill.Side))
			continue
		}

		costBasis, err := fill.CostBasis()
		if err != nil {
			return domain.ProductStat{}, err
		}

		price := fill.Price.Decimal
		if fill.Side == domain.SideBuy {
			overallCost = overallCost.Add(costBasis)
			totalPrice = totalPrice.Add(price)
			totalPriceBought = totalPriceBought.Add(price)
			buysCt++
		} else {
			overallCost = overallCost.Sub(costBasis)
			totalPrice = totalPrice.Sub(price)
			totalPriceSold = totalPriceSold.Add(price)
			sellsCt++
		}
		fillsCt++
	}

	balance, err := a.balanceOf(ctx, product)
	if err != nil {
		return domain.ProductStat{}, err
	}

	currentPrice, err := a.ticker.TickerPrice(ctx, product)
	if err != nil {
		return domain.ProductStat{}, &domain.AdapterError{Op: "get ticker", Product: product, Err: err}
	}

	stat := domain.ProductStat{
		Product:      product,
		OverallCost:  overallCost,
		Balance:      balance,
		CurrentPrice: currentPrice,
	}
	if fillsCt > 0 {
		stat.TotalReturns = currentPrice.Mul(balance).Sub(overallCost)
		stat.AveragePrice = totalPrice.Div(decimal.NewFromInt(fillsCt))
	}
	if sellsCt > 0 {
		stat.AveragePriceSoldAt = totalPriceSold.Div(decimal.NewFromInt(sellsCt))
	}
	if buysCt > 0 {
		stat.AveragePriceBoughtAt = totalPriceBought.Div(decimal.NewFromInt(buysCt))
	}

	slog.Debug("product aggregated",
		"product", product,
		"fills", fillsCt,
		"buys", buysCt,
		"sells", sellsCt,
	)
	return stat, nil
}

// balanceOf busca el balance del producto en /accounts. El product id lleva
// el sufijo quote ("BTC-USD") pero la cuenta solo el código ("BTC").
// Devuelve 0 si no hay match, nunca un error por ausencia.
func (a *Aggregator) balanceOf(ctx context.Context, product string) (decimal.Decimal, error) {
	currency := strings.TrimSuffix(product, quoteSuffix)

	balances, err := a.accounts.ListAccountBalances(ctx)
	if err != nil {
		return decimal.Zero, &domain.AdapterError{Op: "list accounts", Product: product, Err: err}
	}

	for _, b := range balances {
		if b.Currency == currency {
			return b.Balance, nil
		}
	}
	return decimal.Zero, nil
}
