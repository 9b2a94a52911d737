package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// dispatchTimeout acota el despacho de cada notificación. El backend de
// escritorio no expone la duración en pantalla, así que el límite de 30s
// se aplica a la llamada de despacho.
const dispatchTimeout = 30 * time.Second

// Desktop implementa ports.Notifier sobre las notificaciones del sistema
// operativo. Una notificación por stat, sin icono, sin reintentos.
type Desktop struct{}

// NewDesktop crea un notificador de escritorio.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Notify despacha una notificación con el producto como título y el
// resumen de stats como cuerpo.
func (d *Desktop) Notify(ctx context.Context, stat domain.ProductStat) error {
	if stat.Product == "" {
		return &domain.MissingStatFieldError{Field: "product"}
	}

	msg, err := FormatStatMessage(stat)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- beeep.Notify(stat.Product, msg, "")
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("notify.Desktop: %s: %w", stat.Product, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify.Desktop: %s: %w", stat.Product, ctx.Err())
	}
}
