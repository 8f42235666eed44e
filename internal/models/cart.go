// internal/models/cart.go
package models

import "github.com/google/uuid"

// CartItem is unique per (buyer_email, product_id); repeated adds increment
// quantity through the repository upsert. Quantity never drops below 1.
type CartItem struct {
	BaseModel
	BuyerEmail   string    `json:"buyer_email" gorm:"size:255;not null;uniqueIndex:idx_cart_buyer_product"`
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_buyer_product"`
	ItemName     string    `json:"item_name" gorm:"size:255;not null"`
	PricePerUnit float64   `json:"price_per_unit" gorm:"type:decimal(10,2);not null"`
	Image        string    `json:"image" gorm:"size:512"`
	Quantity     int       `json:"quantity" gorm:"not null;default:1"`
}
