package coinbase

// auth.go — firma CB-ACCESS de Coinbase Pro.
//
// Cada request autenticado lleva cuatro headers:
//   CB-ACCESS-KEY        la API key
//   CB-ACCESS-SIGN       base64(HMAC-SHA256(timestamp+METHOD+requestPath+body))
//   CB-ACCESS-TIMESTAMP  unix seconds del momento de la firma
//   CB-ACCESS-PASSPHRASE la passphrase elegida al crear la key
// La clave del HMAC es el secret base64-decoded.

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// signHeaders genera los headers CB-ACCESS para un request.
// requestPath incluye el query string; body es "" para GETs.
func (c *Client) signHeaders(method, requestPath, body string) (map[string]string, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	sig, err := sign(c.creds.Secret, ts+method+requestPath+body)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"CB-ACCESS-KEY":        c.creds.Key,
		"CB-ACCESS-SIGN":       sig,
		"CB-ACCESS-TIMESTAMP":  ts,
		"CB-ACCESS-PASSPHRASE": c.creds.Passphrase,
	}, nil
}

// sign firma el mensaje con el secret base64 y devuelve la firma en base64.
func sign(b64secret, message string) (string, error) {
	secret, err := base64.StdEncoding.DecodeString(b64secret)
	if err != nil {
		return "", fmt.Errorf("auth: decode secret: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
