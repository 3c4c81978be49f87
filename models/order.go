package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentType is how an order is settled
type PaymentType string

const (
	PaymentCash PaymentType = "CASH"
	PaymentCard PaymentType = "CARD"
)

type Order struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName *string      `json:"customerName"`
	Subtotal     float64      `json:"subtotal" gorm:"not null"`
	PaymentType  *PaymentType `json:"paymentType"`
	Seating      *string      `json:"Seating"`
	Items        []OrderItem  `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// WithDefaults fills read-time defaults. Rows stored without a payment type
// are reported as CASH; the stored value is left untouched.
func (o Order) WithDefaults() Order {
	if o.PaymentType == nil || *o.PaymentType == "" {
		cash := PaymentCash
		o.PaymentType = &cash
	}
	return o
}

// OrderItem references its product by id; the price is read through the join.
// Deleting a referenced MenuItem is refused by the RESTRICT constraint.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"orderId" gorm:"not null;index;type:varchar(36)"`
	ProductID string   `json:"productId" gorm:"not null;index;type:varchar(36)"`
	Product   MenuItem `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int      `json:"quantity" gorm:"not null;check:quantity > 0"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
