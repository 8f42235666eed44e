// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order freezes the cart line items at submission time. Orders are immutable
// once written; later product edits never alter a historical order.
type Order struct {
	BaseModel
	BuyerEmail      string      `json:"buyer_email" gorm:"size:255;not null;index"`
	BuyerName       string      `json:"buyer_name" gorm:"size:100"`
	TotalAmount     float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentIntentID string      `json:"payment_intent_id" gorm:"size:255"`
	PaidAt          *time.Time  `json:"paid_at"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ItemName  string    `json:"item_name" gorm:"size:255"`
	Image     string    `json:"image" gorm:"size:512"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
}
