package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

func TestDesktop_NotifyMissingProduct(t *testing.T) {
	desktop := NewDesktop()

	err := desktop.Notify(context.Background(), domain.ProductStat{})

	var missing *domain.MissingStatFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "product", missing.Field)
}
