package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"lounge-orders/events"
	"lounge-orders/models"

	"gorm.io/gorm"
)

type OrderService struct {
	db     *gorm.DB
	events events.Publisher
}

func NewOrderService(db *gorm.DB, publisher events.Publisher) *OrderService {
	return &OrderService{db: db, events: publisher}
}

type OrderLine struct {
	ProductID string
	Quantity  int
}

// SubmitOrderInput is what a customer sends at checkout. Subtotal is computed
// by the cart from its price snapshots and is stored as sent.
type SubmitOrderInput struct {
	CustomerName *string
	PaymentType  *models.PaymentType
	Seating      *string
	Items        []OrderLine
	Subtotal     float64
}

// Submit stores the order header and its lines in one transaction and returns
// the order with products joined.
func (s *OrderService) Submit(ctx context.Context, in SubmitOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range in.Items {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: every item needs a productId and a positive quantity", ErrValidation)
		}
	}
	if in.PaymentType != nil && *in.PaymentType != models.PaymentCash && *in.PaymentType != models.PaymentCard {
		return nil, fmt.Errorf("%w: paymentType must be CASH or CARD", ErrValidation)
	}
	if math.IsNaN(in.Subtotal) || math.IsInf(in.Subtotal, 0) {
		return nil, fmt.Errorf("%w: subtotal must be a number", ErrValidation)
	}

	order := models.Order{
		CustomerName: emptyToNil(in.CustomerName),
		Subtotal:     math.Round(in.Subtotal*100) / 100,
		PaymentType:  in.PaymentType,
		Seating:      emptyToNil(in.Seating),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkProductsExist(tx, in.Items); err != nil {
			return err
		}
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		return tx.Omit("Product").Create(&items).Error
	})
	if err != nil {
		if errors.Is(err, ErrUnknownProduct) {
			return nil, err
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	created, err := s.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, events.New(events.OrderCreated, created.ID, map[string]any{
		"subtotal": created.Subtotal,
		"items":    len(created.Items),
	}))
	return created, nil
}

func checkProductsExist(tx *gorm.DB, lines []OrderLine) error {
	ids := make([]string, 0, len(lines))
	seen := map[string]bool{}
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	var found int64
	if err := tx.Model(&models.MenuItem{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return err
	}
	if int(found) != len(ids) {
		return ErrUnknownProduct
	}
	return nil
}

// Get returns one order with items and products, as stored
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items.Product").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &order, nil
}

// List returns every order newest-first with read-time defaults applied
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.WithDefaults())
	}
	return out, nil
}

// Delete removes an order together with its items
func (s *OrderService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("order_id = ?", id).Delete(&models.OrderItem{})
		if res.Error != nil {
			return res.Error
		}
		res = tx.Where("id = ?", id).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	publish(ctx, s.events, events.New(events.OrderDeleted, id, nil))
	return nil
}
