package services

import (
	"context"
	"log"

	"lounge-orders/events"
	"lounge-orders/models"
)

// MenuCache holds the customer-facing (available only) menu listing
type MenuCache interface {
	GetAvailable(ctx context.Context) ([]models.MenuItem, bool, error)
	SetAvailable(ctx context.Context, items []models.MenuItem) error
	Invalidate(ctx context.Context) error
}

type noCache struct{}

func (noCache) GetAvailable(context.Context) ([]models.MenuItem, bool, error) { return nil, false, nil }
func (noCache) SetAvailable(context.Context, []models.MenuItem) error { return nil }
func (noCache) Invalidate(context.Context) error { return nil }

// publish is fire-and-forget: the write has already been committed
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Printf("events: publish %s %s: %v", e.Type, e.Key, err)
	}
}
