package printful

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var _ ports.FulfillmentGateway = (*Client)(nil)

const (
	DefaultBaseURL = "https://api.printful.com"
	defaultTimeout = 30 * time.Second
	// maxErrorBody — сколько байт тела ошибки сохраняем в GatewayError.
	maxErrorBody = 4 << 10
)

// Config — параметры клиента Printful.
type Config struct {
	BaseURL string
	APIKey  string
	StoreID string
	Timeout time.Duration
}

// Client — HTTP-клиент Printful Orders API.
type Client struct {
	baseURL string
	apiKey  string
	storeID string
	http    *http.Client
}

// NewClient — клиент с трассировкой исходящих запросов (otelhttp).
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		storeID: cfg.StoreID,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type recipient struct {
	Name        string `json:"name"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	StateCode   string `json:"state_code"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
}

type orderFile struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type orderItem struct {
	VariantID int64       `json:"variant_id"`
	Quantity  int64       `json:"quantity"`
	Files     []orderFile `json:"files"`
}

type createOrderRequest struct {
	ExternalID string      `json:"external_id,omitempty"`
	Recipient  recipient   `json:"recipient"`
	Items      []orderItem `json:"items"`
}

type orderResponse struct {
	Result struct {
		ID     json.Number `json:"id"`
		Status string      `json:"status"`
	} `json:"result"`
}

// CreateDraftOrder — POST /orders без confirm: заказ остаётся черновиком.
// externalID (id нашего заказа) защищает от дублей на стороне Printful.
func (c *Client) CreateDraftOrder(ctx context.Context, to domain.ShippingAddress, items []domain.FulfillmentLineItem, externalID string) (string, error) {
	req := createOrderRequest{
		ExternalID: externalID,
		Recipient: recipient{
			Name:        to.Name,
			Address1:    to.Address1,
			Address2:    to.Address2,
			City:        to.City,
			StateCode:   to.StateCode,
			CountryCode: to.CountryCode,
			Zip:         to.Zip,
		},
		Items: make([]orderItem, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, orderItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Files:     []orderFile{{Type: "front", URL: item.FileURL}},
		})
	}

	var resp orderResponse
	if err := c.do(ctx, "create_order", http.MethodPost, "/orders", req, &resp); err != nil {
		return "", err
	}
	id := resp.Result.ID.String()
	if id == "" {
		return "", &GatewayError{Op: "create_order", Status: http.StatusOK, Body: "response has no result.id"}
	}
	return id, nil
}

// FindOrderByExternalID — GET /orders/@{external_id}. 404 — заказа нет, это не ошибка.
func (c *Client) FindOrderByExternalID(ctx context.Context, externalID string) (string, error) {
	var resp orderResponse
	err := c.do(ctx, "find_order", http.MethodGet, "/orders/@"+url.PathEscape(externalID), nil, &resp)
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Status == http.StatusNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return resp.Result.ID.String(), nil
}

// ConfirmOrder — POST /orders/{id}/confirm: заказ уходит в производство.
func (c *Client) ConfirmOrder(ctx context.Context, fulfillmentOrderID string) error {
	return c.do(ctx, "confirm_order", http.MethodPost, "/orders/"+url.PathEscape(fulfillmentOrderID)+"/confirm", nil, nil)
}

// CancelOrder — DELETE /orders/{id}: отмена черновика.
func (c *Client) CancelOrder(ctx context.Context, fulfillmentOrderID string) error {
	return c.do(ctx, "cancel_order", http.MethodDelete, "/orders/"+url.PathEscape(fulfillmentOrderID), nil, nil)
}

// do — один запрос: заголовки авторизации, метрики, разбор ошибок.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("printful %s: marshal: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("printful %s: new request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.storeID != "" {
		req.Header.Set("X-PF-Store-Id", c.storeID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequests.WithLabelValues(op, "0").Inc()
		return &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	metrics.GatewayRequests.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &GatewayError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
