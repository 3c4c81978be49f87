// Package cart holds a customer's selections before an order is submitted.
// A Cart is owned by whoever created it; nothing here is shared or persisted.
package cart

import (
	"errors"
	"math"
	"sort"
	"strings"

	"lounge-orders/models"
)

// Product is the snapshot of a menu item taken when it enters the cart.
// Its price is what the order will be built from, even if the menu changes later.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ProductFrom snapshots a menu item
func ProductFrom(m models.MenuItem) Product {
	p := Product{ID: m.ID, Name: m.Name, Price: m.Price}
	if m.Image != nil {
		p.Image = *m.Image
	}
	if m.Description != nil {
		p.Description = *m.Description
	}
	return p
}

type Item struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price × quantity
func (i Item) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// Cart maps product id to its line. The zero value is not usable; call New.
type Cart struct {
	lines map[string]Item
}

func New() *Cart {
	return &Cart{lines: make(map[string]Item)}
}

// Add puts one more of p in the cart, inserting it at quantity 1 if absent
func (c *Cart) Add(p Product) {
	line, ok := c.lines[p.ID]
	if !ok {
		c.lines[p.ID] = Item{Product: p, Quantity: 1}
		return
	}
	line.Quantity++
	c.lines[p.ID] = line
}

// ChangeQuantity adds delta to a line. A line that drops to zero or below is removed.
func (c *Cart) ChangeQuantity(productID string, delta int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(c.lines, productID)
		return
	}
	c.lines[productID] = line
}

func (c *Cart) Remove(productID string) {
	delete(c.lines, productID)
}

func (c *Cart) Clear() {
	c.lines = make(map[string]Item)
}

// Items returns every line, ordered by product name for stable display
func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, line)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Product.Name != items[j].Product.Name {
			return items[i].Product.Name < items[j].Product.Name
		}
		return items[i].Product.ID < items[j].Product.ID
	})
	return items
}

// Subtotal is Σ price × quantity, rounded to cents
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return RoundCents(total)
}

// TotalCount is Σ quantity
func (c *Cart) TotalCount() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// RoundCents rounds a money amount to two decimals
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingCustomer = errors.New("customer name is required")
	ErrMissingPayment  = errors.New("payment type is required")
	ErrMissingSeating  = errors.New("seating location is required")
)

// Line is one entry of an order submission
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Submission is the body sent to create an order
type Submission struct {
	CustomerName string             `json:"customerName"`
	PaymentType  models.PaymentType `json:"paymentType"`
	Seating      string             `json:"Seating"`
	Items        []Line             `json:"items"`
	Subtotal     float64            `json:"subtotal"`
}

// Checkout validates the customer-side requirements and turns the cart into a submission.
// The cart itself is left unchanged; clear it once the order has been accepted.
func (c *Cart) Checkout(customerName string, paymentType models.PaymentType, seating string) (Submission, error) {
	customerName = strings.TrimSpace(customerName)
	seating = strings.TrimSpace(seating)

	switch {
	case c.Empty():
		return Submission{}, ErrEmptyCart
	case customerName == "":
		return Submission{}, ErrMissingCustomer
	case paymentType != models.PaymentCash && paymentType != models.PaymentCard:
		return Submission{}, ErrMissingPayment
	case seating == "":
		return Submission{}, ErrMissingSeating
	}

	items := c.Items()
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	return Submission{
		CustomerName: customerName,
		PaymentType:  paymentType,
		Seating:      seating,
		Items:        lines,
		Subtotal:     c.Subtotal(),
	}, nil
}
