// Package api is the dashboard's client for the holdings service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aristath/holdings-dashboard/internal/holdings"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request and response types

// NewHolding is the body of POST /api/holdings.
type NewHolding struct {
	Symbol  string  `json:"symbol"`
	Shares  float64 `json:"shares"`
	AvgCost float64 `json:"avg_cost"`
}

// ConfigUpdate is the body of POST /api/config. Nil fields are not sent.
type ConfigUpdate struct {
	EmailFrom    *string  `json:"email_from,omitempty"`
	EmailTo      *string  `json:"email_to,omitempty"`
	HardStop     *float64 `json:"hard_stop,omitempty"`
	Warning      *float64 `json:"warning,omitempty"`
	ProfitTarget *float64 `json:"profit_target,omitempty"`
	Pullback     *float64 `json:"pullback,omitempty"`
	RSIMax       *float64 `json:"rsi_max,omitempty"`
}

// Settings is the body of GET /api/config.
type Settings struct {
	EmailFrom    string  `json:"email_from"`
	EmailTo      string  `json:"email_to"`
	HardStop     float64 `json:"hard_stop"`
	Warning      float64 `json:"warning"`
	ProfitTarget float64 `json:"profit_target"`
	Pullback     float64 `json:"pullback"`
	RSIMax       float64 `json:"rsi_max"`
}

// result is the {success, error?} envelope returned by every mutation.
type result struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// Request ids

type requestIDKey struct{}

// WithRequestID attaches an id that is sent as X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Internal helpers

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	return c.httpClient.Do(req)
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	op := "GET " + path
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(target); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

// mutate sends a request whose answer is the result envelope. A non-2xx status
// still counts as an application error when the body carries the envelope.
func (c *Client) mutate(ctx context.Context, method, path string, body any) error {
	op := method + " " + path
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299

	var res result
	if err := json.Unmarshal(data, &res); err != nil {
		if !ok {
			return &TransportError{Op: op, StatusCode: resp.StatusCode}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if res.Success == nil && res.Error == "" {
		if !ok {
			return &TransportError{Op: op, StatusCode: resp.StatusCode}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("response has no success field")}
	}
	if res.Success != nil && *res.Success && ok {
		return nil
	}
	return &ApplicationError{Op: op, Reason: res.Error}
}

func symbolPath(prefix, symbol string) string {
	return prefix + "/" + url.PathEscape(symbol)
}

// Endpoints

// Holdings fetches the full holdings collection with live price fields.
func (c *Client) Holdings(ctx context.Context) ([]holdings.HoldingRecord, error) {
	var records []holdings.HoldingRecord
	if err := c.get(ctx, "/api/holdings", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) AddHolding(ctx context.Context, h NewHolding) error {
	return c.mutate(ctx, http.MethodPost, "/api/holdings", h)
}

func (c *Client) DeleteHolding(ctx context.Context, symbol string) error {
	return c.mutate(ctx, http.MethodDelete, symbolPath("/api/holdings", symbol), nil)
}

func (c *Client) Watchlist(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := c.get(ctx, "/api/watchlist", &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

func (c *Client) AddWatchlist(ctx context.Context, symbol string) error {
	return c.mutate(ctx, http.MethodPost, "/api/watchlist", map[string]string{"symbol": symbol})
}

func (c *Client) DeleteWatchlist(ctx context.Context, symbol string) error {
	return c.mutate(ctx, http.MethodDelete, symbolPath("/api/watchlist", symbol), nil)
}

func (c *Client) UpdateConfig(ctx context.Context, update ConfigUpdate) error {
	return c.mutate(ctx, http.MethodPost, "/api/config", update)
}

func (c *Client) Config(ctx context.Context) (Settings, error) {
	var s Settings
	return s, c.get(ctx, "/api/config", &s)
}
