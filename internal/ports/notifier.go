package ports

import (
	"context"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// Notifier presenta un stat de producto al usuario.
type Notifier interface {
	// Notify valida el stat, lo renderiza y lo despacha. Una notificación
	// por llamada; los fallos no se reintentan.
	Notify(ctx context.Context, stat domain.ProductStat) error
}
