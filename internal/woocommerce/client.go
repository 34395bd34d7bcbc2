package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wc-invoice-gateway/internal/adapter"
	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/transport"
)

// restAPIPath is the base path for WooCommerce REST API v3 endpoints.
// Must include /wp-json prefix for proper routing.
const restAPIPath = "/wp-json/wc/v3"

// Config holds WooCommerce-specific adapter configuration.
type Config struct {
	StoreURL  string
	APIKey    string // consumer key, ck_...
	APISecret string // consumer secret, cs_...

	// Fingerprint sends requests with a browser TLS fingerprint.
	Fingerprint bool

	// HTTPClient overrides the default client. Tests point it at httptest servers.
	HTTPClient *http.Client
}

// Client implements the adapter interface for WooCommerce stores using the REST API v3.
//
// Unlike the Store API, the REST API authenticates every request with the
// consumer key and secret (HTTP Basic Auth over TLS) and needs no nonce.
type Client struct {
	httpClient *http.Client
	storeURL   string
	apiKey     string
	apiSecret  string
}

// New creates a WooCommerce client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("API credentials are required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: transport.New(transport.Config{
				Timeout:     30 * time.Second,
				Fingerprint: cfg.Fingerprint,
			}),
		}
	}

	return &Client{
		httpClient: httpClient,
		storeURL:   strings.TrimSuffix(cfg.StoreURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
	}, nil
}

// GetOrder fetches an order.
func (c *Client) GetOrder(ctx context.Context, orderID int) (*model.Order, error) {
	var order WooOrder
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return OrderFromWoo(&order), nil
}

// UpdateOrderStatus sets the order status.
// WooCommerce runs its status transition hooks (stock reduction, new order
// emails) as part of this update.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status model.OrderStatus) (*model.Order, error) {
	body := WooOrderUpdate{Status: string(status.Normalize())}

	var order WooOrder
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), body, &order); err != nil {
		return nil, err
	}
	return OrderFromWoo(&order), nil
}

// AddOrderNote attaches a note to the order.
func (c *Client) AddOrderNote(ctx context.Context, orderID int, note string, customerNote bool) error {
	body := WooOrderNote{Note: note, CustomerNote: customerNote}

	var created WooOrderNote
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/notes", orderID), body, &created)
}

// SystemStatus fetches the store's system status report.
func (c *Client) SystemStatus(ctx context.Context) (*model.SystemStatus, error) {
	var status WooSystemStatus
	if err := c.do(ctx, http.MethodGet, "/system_status", nil, &status); err != nil {
		return nil, err
	}
	return SystemStatusFromWoo(&status), nil
}

// === Helper Methods ===

// do executes a REST API request and decodes the JSON response into out.
// Path should be relative to the REST API (e.g., "/orders/12").
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.storeURL+restAPIPath+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	c.setRESTHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewStoreUnavailableError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.parseErrorResponse(resp.StatusCode, path, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// setRESTHeaders sets headers for WooCommerce REST API requests.
func (c *Client) setRESTHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", transport.DefaultUserAgent)
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)
}

// parseErrorResponse converts a WooCommerce error body to an APIError.
func (c *Client) parseErrorResponse(statusCode int, path string, body []byte) error {
	var wcErr WooErrorResponse
	json.Unmarshal(body, &wcErr) // Best effort parse

	return model.NewStoreError(statusCode, resourceName(path), wcErr.Code, wcErr.Message)
}

// resourceName describes a REST path for error messages: "/orders/42"
// and "/orders/42/notes" are "order 42".
func resourceName(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "orders" {
		return "order " + parts[1]
	}
	return strings.ReplaceAll(strings.Trim(path, "/"), "/", " ")
}

// Verify Client implements Adapter interface at compile time.
var _ adapter.Adapter = (*Client)(nil)
