package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"puredrop/internal/dashboard"
	"puredrop/internal/models"
	"strings"
	"sync"
	"time"
)

// Client talks to the shop owner HTTP API on behalf of one owner.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

// APIError is a non-2xx response. Message carries the server's
// {"message": ...} body when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type LoginResponse struct {
	Message   string            `json:"message"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Owner     *models.ShopOwner `json:"owner"`
}

type updateStatusResponse struct {
	Message string        `json:"message"`
	Order   *models.Order `json:"order"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token sent on guarded calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, phone, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"phone": phone, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/owner/login", body, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// MyShopOrders lists the owner's orders. An empty status returns all of them.
func (c *Client) MyShopOrders(ctx context.Context, status models.DeliveryStatus) ([]models.Order, error) {
	path := "/api/orders/my-shop-orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, status models.DeliveryStatus) (*models.Order, error) {
	var resp updateStatusResponse
	body := map[string]string{"deliveryStatus": string(status)}
	path := "/api/orders/update-status/" + url.PathEscape(orderID)
	if err := c.do(ctx, http.MethodPut, path, body, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (c *Client) Stats(ctx context.Context) (*dashboard.Summary, error) {
	var summary dashboard.Summary
	if err := c.do(ctx, http.MethodGet, "/api/orders/stats", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) GetShop(ctx context.Context, phone string) (*models.ShopOwner, error) {
	var owner models.ShopOwner
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+url.PathEscape(phone), nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// UpdateShop sends a partial profile; only the keys present in fields change.
func (c *Client) UpdateShop(ctx context.Context, phone string, fields map[string]interface{}) (*models.ShopOwner, error) {
	var owner models.ShopOwner
	if err := c.do(ctx, http.MethodPut, "/api/shops/"+url.PathEscape(phone), fields, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
