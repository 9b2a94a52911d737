package coinbase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.pro.coinbase.com"

	// Rate limits por debajo de los límites documentados.
	// Endpoints públicos: 3 req/s, burst 6
	publicRatePerSec = 3
	// Endpoints privados (fills, accounts): 5 req/s, burst 10
	privateRatePerSec = 5

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Credentials son las credenciales de API de Coinbase Pro.
// Secret viene base64-encoded tal como lo entrega el exchange.
type Credentials struct {
	Key        string
	Passphrase string
	Secret     string
}

// Client es el HTTP client de Coinbase Pro con rate limiting, retries y
// firma HMAC de los requests autenticados.
type Client struct {
	http           *http.Client
	baseURL        string
	creds          Credentials
	publicLimiter  *rate.Limiter
	privateLimiter *rate.Limiter
}

// NewClient crea un Client contra el base URL dado.
// Si baseURL está vacío, usa el URL de producción.
func NewClient(baseURL string, creds Credentials) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:           &http.Client{Timeout: 10 * time.Second},
		baseURL:        baseURL,
		creds:          creds,
		publicLimiter:  rate.NewLimiter(publicRatePerSec, 6),
		privateLimiter: rate.NewLimiter(privateRatePerSec, 10),
	}
}

// get hace un GET público con rate limiting y retries.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, requestPath string, out any) error {
	_, err := c.doWithRetry(ctx, limiter, requestPath, false, out)
	return err
}

// getSigned hace un GET autenticado. Devuelve el header CB-AFTER de la
// respuesta, el cursor de paginación de Coinbase Pro (vacío en la última
// página).
func (c *Client) getSigned(ctx context.Context, limiter *rate.Limiter, requestPath string, out any) (string, error) {
	return c.doWithRetry(ctx, limiter, requestPath, true, out)
}

// doWithRetry ejecuta el GET con backoff exponencial. Los headers de firma
// se regeneran en cada intento para que el timestamp no caduque.
func (c *Client) doWithRetry(ctx context.Context, limiter *rate.Limiter, requestPath string, signed bool, out any) (string, error) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+requestPath, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Accept", "application/json")
		if signed {
			headers, err := c.signHeaders(http.MethodGet, requestPath, "")
			if err != nil {
				return "", err
			}
			for k, v := range headers {
				req.Header.Set(k, v)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return "", fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by API", "path", requestPath, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return "", fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return "", fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		after := resp.Header.Get("CB-AFTER")
		err = decodeBody(resp.Body, out)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		return after, nil
	}
	return "", fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
