package client

import (
	"context"
	"errors"
	"log"

	"lounge-orders/models"
)

// Session keeps a Client signed in. Calls that come back unauthorized, which
// is what an expired token looks like, log in again and retry once.
type Session struct {
	Client   *Client
	Username string
	Password string
}

func NewSession(c *Client, username, password string) *Session {
	return &Session{Client: c, Username: username, Password: password}
}

func (s *Session) Login(ctx context.Context) (*models.User, error) {
	return s.Client.Login(ctx, s.Username, s.Password)
}

func (s *Session) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.retry(ctx, func() error {
		var err error
		orders, err = s.Client.ListOrders(ctx)
		return err
	})
	return orders, err
}

func (s *Session) retry(ctx context.Context, call func() error) error {
	err := call()
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}
	log.Printf("🔑 session rejected, logging in again as %s", s.Username)
	if _, err := s.Login(ctx); err != nil {
		return err
	}
	return call()
}
