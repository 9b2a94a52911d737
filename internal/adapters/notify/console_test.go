package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

func TestConsole_Notify(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	err := c.Notify(context.Background(), sampleStat())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "BTC-USD")
	assert.Contains(t, out, "over all cost: $100.00")
}

func TestConsole_NotifyMissingProduct(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	stat := sampleStat()
	stat.Product = ""
	err := c.Notify(context.Background(), stat)

	var missing *domain.MissingStatFieldError
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, buf.String(), "no escribe nada si el stat no valida")
}

func TestConsole_PrintStats(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	eth := sampleStat()
	eth.Product = "ETH-USD"
	eth.OverallCost = d("50")
	eth.TotalReturns = d("99.5")

	c.PrintStats([]domain.ProductStat{sampleStat(), eth})

	out := buf.String()
	assert.Contains(t, out, "BTC-USD")
	assert.Contains(t, out, "ETH-USD")
	// resumen: 100 + 50 de cost basis, 1900.50 + 99.50 de returns
	assert.Contains(t, out, "2 products")
	assert.Contains(t, out, "$150.00")
	assert.Contains(t, out, "$2,000.00")
}

func TestConsole_PrintStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	c.PrintStats(nil)

	assert.Contains(t, buf.String(), "no product stats to report")
}
