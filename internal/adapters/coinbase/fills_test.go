package coinbase_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlso70/coinbase-pro-stats/internal/adapters/coinbase"
	"github.com/carlso70/coinbase-pro-stats/internal/domain"
)

var testCreds = coinbase.Credentials{
	Key:        "test-key",
	Passphrase: "test-passphrase",
	Secret:     base64.StdEncoding.EncodeToString([]byte("super-secret")),
}

func newTestClient(srv *httptest.Server) *coinbase.Client {
	return coinbase.NewClient(srv.URL, testCreds)
}

// fillJSON construye el JSON de un fill tal como lo devuelve la API.
func fillJSON(tradeID int, price, size, fee, side string) map[string]any {
	return map[string]any{
		"trade_id":   tradeID,
		"product_id": "BTC-USD",
		"order_id":   "d50ec984-77a8-460a-b958-66f114b0de9b",
		"price":      price,
		"size":       size,
		"fee":        fee,
		"side":       side,
		"liquidity":  "T",
		"settled":    true,
		"created_at": "2014-11-07T22:19:28.578544Z",
	}
}

func TestListFills_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fills", r.URL.Path)
		assert.Equal(t, "BTC-USD", r.URL.Query().Get("product_id"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			fillJSON(74, "10.00", "0.01", "0.00025", "buy"),
			fillJSON(75, "12.00", "0.02", "0.0005", "sell"),
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	fills, err := client.ListFills(context.Background(), "BTC-USD")

	require.NoError(t, err)
	require.Len(t, fills, 2)

	f := fills[0]
	assert.Equal(t, int64(74), f.TradeID)
	assert.Equal(t, "BTC-USD", f.ProductID)
	assert.Equal(t, "d50ec984-77a8-460a-b958-66f114b0de9b", f.OrderID.String())
	assert.Equal(t, domain.SideBuy, f.Side)
	assert.True(t, f.Settled)
	require.True(t, f.Price.Valid)
	assert.True(t, f.Price.Decimal.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 2014, f.CreatedAt.Year())

	assert.Equal(t, domain.SideSell, fills[1].Side)
}

func TestListFills_Pagination(t *testing.T) {
	const perPage = 100

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := make([]map[string]any, 0, perPage)

		switch r.URL.Query().Get("after") {
		case "":
			for i := 0; i < perPage; i++ {
				page = append(page, fillJSON(i, "10.00", "0.01", "0", "buy"))
			}
			w.Header().Set("CB-AFTER", "cursor-1")
		case "cursor-1":
			page = append(page, fillJSON(perPage, "10.00", "0.01", "0", "buy"))
			page = append(page, fillJSON(perPage+1, "10.00", "0.01", "0", "buy"))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("after"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	fills, err := client.ListFills(context.Background(), "BTC-USD")

	require.NoError(t, err)
	assert.Len(t, fills, perPage+2, "debe materializar todas las páginas")
}

func TestListFills_MissingFeeStaysInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fill := fillJSON(74, "10.00", "0.01", "0", "buy")
		delete(fill, "fee")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{fill})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	fills, err := client.ListFills(context.Background(), "BTC-USD")

	require.NoError(t, err)
	require.Len(t, fills, 1)

	// el campo ausente no se convierte en cero; el cost basis falla después
	assert.False(t, fills[0].Fee.Valid)
	_, err = fills[0].CostBasis()
	var missing *domain.MissingFillFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "fee", missing.Field)
}

func TestListFills_SignedHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testCreds.Key, r.Header.Get("CB-ACCESS-KEY"))
		assert.Equal(t, testCreds.Passphrase, r.Header.Get("CB-ACCESS-PASSPHRASE"))
		require.NotEmpty(t, r.Header.Get("CB-ACCESS-TIMESTAMP"))

		// recomputa la firma con el mismo secret y el requestPath completo
		msg := r.Header.Get("CB-ACCESS-TIMESTAMP") + http.MethodGet + r.URL.RequestURI()
		mac := hmac.New(sha256.New, []byte("super-secret"))
		mac.Write([]byte(msg))
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
		assert.Equal(t, expected, r.Header.Get("CB-ACCESS-SIGN"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.ListFills(context.Background(), "BTC-USD")
	require.NoError(t, err)
}

func TestTickerPrice_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/BTC-USD/ticker", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"trade_id": 4729088, "price": "333.99", "size": "0.193", "time": "2015-11-14T20:46:03.511254Z"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	price, err := client.TickerPrice(context.Background(), "BTC-USD")

	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("333.99")), "got %s", price)
}

func TestListAccountBalances_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": "a1", "currency": "BTC", "balance": "0.5", "available": "0.5", "hold": "0"},
			{"id": "a2", "currency": "USD", "balance": "80.2301", "available": "79", "hold": "1.2301"}
		]`)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	balances, err := client.ListAccountBalances(context.Background())

	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "BTC", balances[0].Currency)
	assert.True(t, balances[0].Balance.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, "USD", balances[1].Currency)
}

func TestClient_RetriesOnRateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"price": "100.00"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	price, err := client.TickerPrice(context.Background(), "BTC-USD")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, price.Equal(decimal.RequireFromString("100")))
}

func TestClient_ClientErrorFailsFast(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Invalid API Key"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.ListFills(context.Background(), "BTC-USD")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1, calls, "los 4xx no se reintentan")
}
