package coinbase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

// mapFills convierte los DTOs de /fills a domain.Fill.
func mapFills(raw []rawFill) ([]domain.Fill, error) {
	fills := make([]domain.Fill, 0, len(raw))
	for _, rf := range raw {
		f, err := mapFill(rf)
		if err != nil {
			return nil, err
		}
		fills = append(fills, f)
	}
	return fills, nil
}

// mapFill convierte un rawFill a domain.Fill. Un campo ausente en el JSON
// queda como NullDecimal inválido; nunca se convierte en cero.
func mapFill(rf rawFill) (domain.Fill, error) {
	f := domain.Fill{
		TradeID:   rf.TradeID,
		ProductID: rf.ProductID,
		Side:      domain.Side(rf.Side),
		Liquidity: rf.Liquidity,
		Settled:   rf.Settled,
		CreatedAt: parseFillTime(rf.CreatedAt),
	}

	if id, err := uuid.Parse(rf.OrderID); err == nil {
		f.OrderID = id
	}

	var err error
	if f.Price, err = parseNullDecimal(rf.Price, "price", rf.ProductID); err != nil {
		return domain.Fill{}, err
	}
	if f.Size, err = parseNullDecimal(rf.Size, "size", rf.ProductID); err != nil {
		return domain.Fill{}, err
	}
	if f.Fee, err = parseNullDecimal(rf.Fee, "fee", rf.ProductID); err != nil {
		return domain.Fill{}, err
	}

	return f, nil
}

// parseNullDecimal parsea un campo numérico opcional de la API.
func parseNullDecimal(s *string, field, product string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("parse %s %q for %s: %w", field, *s, product, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// parseFillTime parsea el created_at ISO-8601 de la API.
func parseFillTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano, time.RFC3339,
		"2006-01-02T15:04:05.000000Z", "2006-01-02 15:04:05.000000",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
