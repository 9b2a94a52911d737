package notify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleStat() domain.ProductStat {
	return domain.ProductStat{
		Product:              "BTC-USD",
		OverallCost:          d("100"),
		TotalReturns:         d("1900.5"),
		Balance:              d("0.5"),
		CurrentPrice:         d("4000"),
		AveragePrice:         d("12345"),
		AveragePriceSoldAt:   d("1234"),
		AveragePriceBoughtAt: d("123"),
	}
}

func TestFormatStatMessage(t *testing.T) {
	msg, err := FormatStatMessage(sampleStat())
	require.NoError(t, err)

	assert.Contains(t, msg, "over all cost: $100.00")
	assert.Contains(t, msg, "total returns: $1,900.50")
	assert.Contains(t, msg, "balance: 0.5")
	assert.Contains(t, msg, "current price: $4,000.00")
}

func TestFormatStatMessage_MissingProduct(t *testing.T) {
	stat := sampleStat()
	stat.Product = ""

	_, err := FormatStatMessage(stat)

	var missing *domain.MissingStatFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "product", missing.Field)
}

func TestUSD_RoundsToCent(t *testing.T) {
	assert.Equal(t, "$0.10", usd(d("0.09975")))
	assert.Equal(t, "-$2.00", usd(d("-2")))
	assert.Equal(t, "$0.00", usd(decimal.Zero))
}
