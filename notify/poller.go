// Package notify watches the order list and raises an alert when new orders arrive.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"lounge-orders/models"
)

// DefaultInterval matches the dashboard refresh rate
const DefaultInterval = time.Minute

// Source returns the full current order list
type Source interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

type Alerter interface {
	Alert(ctx context.Context, order models.Order) error
}

// Poller re-fetches orders and alerts on ids it has not seen before. The
// first successful poll only seeds the snapshot.
type Poller struct {
	Source   Source
	Alerter  Alerter
	Interval time.Duration
	// Tick overrides the ticker; tests drive polls through it
	Tick <-chan time.Time
	// OnUpdate receives every fetched list, newest first as served
	OnUpdate func(orders []models.Order)

	mu     sync.Mutex
	seen   map[string]struct{}
	seeded bool
}

// Poll runs one fetch-and-diff cycle and returns the orders that are new
func (p *Poller) Poll(ctx context.Context) ([]models.Order, error) {
	orders, err := p.Source.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	var fresh []models.Order
	if p.seeded {
		for _, o := range orders {
			if _, ok := p.seen[o.ID]; !ok {
				fresh = append(fresh, o)
			}
		}
	}
	// the snapshot is replaced wholesale, so deleted orders drop out too
	next := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		next[o.ID] = struct{}{}
	}
	p.seen = next
	p.seeded = true
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(orders)
	}
	for _, o := range fresh {
		if err := p.Alerter.Alert(ctx, o); err != nil {
			log.Printf("⚠️  alert for order %s failed: %v", o.ID, err)
		}
	}
	return fresh, nil
}

// Run polls immediately and then on every tick until ctx is done.
// Fetch errors are logged and the next tick tries again.
func (p *Poller) Run(ctx context.Context) error {
	tick := p.Tick
	if tick == nil {
		interval := p.Interval
		if interval <= 0 {
			interval = DefaultInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			log.Printf("⚠️  poll orders: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}
