package domain

import "github.com/shopspring/decimal"

// ProductStat es el resultado agregado de un producto sobre una ventana
// de tiempo. Los nombres JSON siguen el payload original de la herramienta.
//
// AveragePrice es una media mezclada con signo (compras positivas, ventas
// negativas, dividido entre el total de fills); AveragePriceSoldAt y
// AveragePriceBoughtAt son medias reales de sus subconjuntos. Son tres
// métricas distintas a propósito.
type ProductStat struct {
	Product              string          `json:"product"`
	OverallCost          decimal.Decimal `json:"over_all_cost"`
	TotalReturns         decimal.Decimal `json:"total_returns"`
	Balance              decimal.Decimal `json:"balance"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	AveragePrice         decimal.Decimal `json:"average_price"`
	AveragePriceSoldAt   decimal.Decimal `json:"average_price_sold_at"`
	AveragePriceBoughtAt decimal.Decimal `json:"average_price_bought_at"`
}

// Validate comprueba que el stat puede notificarse. Con un struct tipado el
// único campo que puede faltar estructuralmente es el identificador de
// producto; los siete campos numéricos siempre existen (cero por defecto).
func (s ProductStat) Validate() error {
	if s.Product == "" {
		return &MissingStatFieldError{Field: "product"}
	}
	return nil
}
