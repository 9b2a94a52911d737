package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side es el lado de un fill según la API.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// IsKnown reports whether the side is one of buy/sell. Coinbase only emits
// those two, but the value comes off the wire and is preserved as-is.
func (s Side) IsKnown() bool {
	return s == SideBuy || s == SideSell
}

// Fill representa una porción ejecutada de una orden en el exchange.
// Price, Size y Fee usan NullDecimal porque la API puede omitir los campos;
// un campo ausente nunca se convierte silenciosamente en cero.
type Fill struct {
	TradeID   int64
	OrderID   uuid.UUID
	ProductID string
	Price     decimal.NullDecimal
	Size      decimal.NullDecimal
	Fee       decimal.NullDecimal
	Side      Side
	Liquidity string // "M" maker, "T" taker
	Settled   bool
	CreatedAt time.Time // UTC
}

// InRange reports whether the fill was created inside [start, end].
func (f Fill) InRange(start, end time.Time) bool {
	return !f.CreatedAt.Before(start) && !f.CreatedAt.After(end)
}

// CostBasis devuelve price×size − fee para este fill.
// Falla con *MissingFillFieldError si falta alguno de los tres campos.
func (f Fill) CostBasis() (decimal.Decimal, error) {
	if !f.Price.Valid {
		return decimal.Zero, &MissingFillFieldError{Field: "price", ProductID: f.ProductID}
	}
	if !f.Size.Valid {
		return decimal.Zero, &MissingFillFieldError{Field: "size", ProductID: f.ProductID}
	}
	if !f.Fee.Valid {
		return decimal.Zero, &MissingFillFieldError{Field: "fee", ProductID: f.ProductID}
	}
	return f.Price.Decimal.Mul(f.Size.Decimal).Sub(f.Fee.Decimal), nil
}

// AccountBalance es el balance de una cuenta por código de moneda ("BTC", "USD").
type AccountBalance struct {
	Currency string
	Balance  decimal.Decimal
}
