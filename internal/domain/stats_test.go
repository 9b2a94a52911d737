package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStat_Validate(t *testing.T) {
	stat := ProductStat{Product: "BTC-USD"}
	assert.NoError(t, stat.Validate())
}

func TestProductStat_ValidateMissingProduct(t *testing.T) {
	err := ProductStat{}.Validate()

	var missing *MissingStatFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "product", missing.Field)
}

func TestProductStat_JSONFieldNames(t *testing.T) {
	stat := ProductStat{
		Product:     "BTC-USD",
		OverallCost: decimal.RequireFromString("100.5"),
	}

	data, err := json.Marshal(stat)
	require.NoError(t, err)

	// los nombres del payload original
	for _, key := range []string{
		"product", "over_all_cost", "total_returns", "balance",
		"current_price", "average_price", "average_price_sold_at",
		"average_price_bought_at",
	} {
		assert.Contains(t, string(data), `"`+key+`"`)
	}
}
