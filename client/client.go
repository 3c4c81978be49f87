// Package client is a typed HTTP client for the lounge orders JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lounge-orders/cart"
	"lounge-orders/models"
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

var ErrUnauthorized = errors.New("unauthorized")

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token is sent as a Bearer token when set. Login fills it in.
	Token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Login starts a session and keeps its token for later calls
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out.User, nil
}

// ListMenu returns what customers can order
func (c *Client) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do(ctx, http.MethodGet, "/menu-items", nil, &items)
	return items, err
}

func (c *Client) ListAllMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do(ctx, http.MethodGet, "/menu-items/all", nil, &items)
	return items, err
}

// PlaceOrder submits a checked-out cart
func (c *Client) PlaceOrder(ctx context.Context, sub cart.Submission) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", sub, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/orders", nil, &orders)
	return orders, err
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders?id="+url.QueryEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		statusErr := &StatusError{Code: resp.StatusCode, Message: msg.Error}
		if statusErr.Message == "" {
			statusErr.Message = msg.Message
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrUnauthorized, statusErr)
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
