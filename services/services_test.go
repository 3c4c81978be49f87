package services

import (
	"context"
	"sync"
	"testing"

	"lounge-orders/config"
	"lounge-orders/events"
	"lounge-orders/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Type
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Price: price, Available: available}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func strPtr(s string) *string { return &s }
