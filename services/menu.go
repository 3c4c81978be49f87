package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lounge-orders/events"
	"lounge-orders/models"

	"gorm.io/gorm"
)

type MenuService struct {
	db     *gorm.DB
	cache  MenuCache
	events events.Publisher
}

// NewMenuService wires the catalog. cache and publisher may be nil.
func NewMenuService(db *gorm.DB, cache MenuCache, publisher events.Publisher) *MenuService {
	if cache == nil {
		cache = noCache{}
	}
	return &MenuService{db: db, cache: cache, events: publisher}
}

type CreateMenuItemInput struct {
	Name        string
	Description *string
	Image       *string
}

// Create adds a menu item. New items always start at price 0 and available;
// staff set the price afterwards.
func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	item := models.MenuItem{
		Name:        name,
		Description: emptyToNil(in.Description),
		Image:       nilIfEmpty(in.Image),
		Price:       0,
		Available:   true,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.changed(ctx, item.ID)
	return &item, nil
}

// MenuItemUpdate carries only the fields the caller wants to change
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Image       *string
	Price       *float64
	Available   *bool
}

func (u MenuItemUpdate) columns() (map[string]any, error) {
	cols := map[string]any{}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", ErrValidation)
		}
		cols["name"] = name
	}
	if u.Description != nil {
		cols["description"] = emptyToNil(u.Description)
	}
	if u.Image != nil {
		cols["image"] = nilIfEmpty(u.Image)
	}
	if u.Price != nil {
		if *u.Price < 0 {
			return nil, fmt.Errorf("%w: price must be ≥ 0", ErrValidation)
		}
		cols["price"] = *u.Price
	}
	if u.Available != nil {
		cols["available"] = *u.Available
	}
	return cols, nil
}

// Update applies a partial edit. The management screen and the pricing screen
// both come through here.
func (s *MenuService) Update(ctx context.Context, id string, upd MenuItemUpdate) (*models.MenuItem, error) {
	cols, err := upd.columns()
	if err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return item, nil
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("update menu item %s: %w", id, err)
	}
	if err := s.db.WithContext(ctx).First(item, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("reload menu item %s: %w", id, err)
	}

	s.changed(ctx, id)
	return item, nil
}

// Remove deletes an item that no order refers to
func (s *MenuService) Remove(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrMenuItemInUse
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrMenuItemInUse) {
			return err
		}
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}

	s.changed(ctx, id)
	return nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return &item, nil
}

// List returns items newest-first. availableOnly is the customer view.
func (s *MenuService) List(ctx context.Context, availableOnly bool) ([]models.MenuItem, error) {
	if availableOnly {
		if items, ok, err := s.cache.GetAvailable(ctx); err != nil {
			log.Printf("menu cache read failed: %v", err)
		} else if ok {
			return items, nil
		}
	}

	query := s.db.WithContext(ctx).Order("created_at desc")
	if availableOnly {
		query = query.Where("available = ?", true)
	}

	items := []models.MenuItem{}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	if availableOnly {
		if err := s.cache.SetAvailable(ctx, items); err != nil {
			log.Printf("menu cache write failed: %v", err)
		}
	}
	return items, nil
}

// InvalidateCache drops the cached customer listing after bulk changes made elsewhere
func (s *MenuService) InvalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("menu cache invalidate failed: %v", err)
	}
}

func (s *MenuService) changed(ctx context.Context, id string) {
	s.InvalidateCache(ctx)
	publish(ctx, s.events, events.New(events.MenuItemChanged, id, nil))
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// nilIfEmpty is for opaque values such as image blobs, which are stored byte for byte
func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
