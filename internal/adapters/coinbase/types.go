package coinbase

import (
	"encoding/json"
	"io"
)

// DTOs raw de la API de Coinbase Pro. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.
//
// Los campos numéricos llegan como strings; price/size/fee usan *string
// para poder distinguir "ausente" de "cero".

// rawFill es un item de GET /fills.
type rawFill struct {
	TradeID   int64   `json:"trade_id"`
	ProductID string  `json:"product_id"`
	OrderID   string  `json:"order_id"`
	Price     *string `json:"price"`
	Size      *string `json:"size"`
	Fee       *string `json:"fee"`
	Side      string  `json:"side"`
	Liquidity string  `json:"liquidity"`
	Settled   bool    `json:"settled"`
	CreatedAt string  `json:"created_at"`
}

// rawTicker es la respuesta de GET /products/{id}/ticker.
type rawTicker struct {
	TradeID int64  `json:"trade_id"`
	Price   string `json:"price"`
	Size    string `json:"size"`
	Bid     string `json:"bid"`
	Ask     string `json:"ask"`
	Volume  string `json:"volume"`
	Time    string `json:"time"`
}

// rawAccount es un item de GET /accounts.
type rawAccount struct {
	ID        string `json:"id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	Available string `json:"available"`
	Hold      string `json:"hold"`
	ProfileID string `json:"profile_id"`
}

func decodeBody(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}
