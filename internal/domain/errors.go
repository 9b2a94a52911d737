package domain

import "fmt"

// MissingFillFieldError indica que un fill llegó sin price, size o fee,
// por lo que su cost basis no puede calcularse.
type MissingFillFieldError struct {
	Field     string
	ProductID string
}

func (e *MissingFillFieldError) Error() string {
	if e.ProductID == "" {
		return fmt.Sprintf("missing %s in fill", e.Field)
	}
	return fmt.Sprintf("missing %s in fill for %s", e.Field, e.ProductID)
}

// MissingStatFieldError indica que un ProductStat no tiene un campo
// requerido para notificar.
type MissingStatFieldError struct {
	Field string
}

func (e *MissingStatFieldError) Error() string {
	return fmt.Sprintf("missing %s in product stat", e.Field)
}

// AdapterError envuelve cualquier fallo del adapter del exchange
// (auth, red, rate limit). Se propaga al caller sin reintentos.
type AdapterError struct {
	Op      string // "list fills", "get ticker", "list accounts"
	Product string // vacío para operaciones que no son por producto
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Product == "" {
		return fmt.Sprintf("exchange adapter: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("exchange adapter: %s %s: %v", e.Op, e.Product, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }
