// Package payment holds the Razorpay Orders REST client behind the
// ports.PaymentGateway interface.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cartloom/admin-api/internal/core/ports"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Config captures the provider credentials. BaseURL is overridable for tests.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// Client calls the Razorpay Orders API with HTTP basic auth.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	// http.DefaultClient has no timeout; external calls get a bounded one.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second, Transport: transport},
	}
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Error    *struct {
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers an order with the provider with auto capture enabled.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	defer res.Body.Close()

	var body createOrderResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("razorpay decode response: %w", err)
	}

	if res.StatusCode >= 400 {
		if body.Error != nil && body.Error.Description != "" {
			return nil, fmt.Errorf("razorpay http %d: %s", res.StatusCode, body.Error.Description)
		}
		return nil, fmt.Errorf("razorpay http %d", res.StatusCode)
	}

	return &ports.ProviderOrder{
		ID:       body.ID,
		Amount:   body.Amount,
		Currency: body.Currency,
		Receipt:  body.Receipt,
	}, nil
}
