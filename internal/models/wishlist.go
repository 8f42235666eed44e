// internal/models/wishlist.go
package models

import "github.com/google/uuid"

// WishlistItem is unique per (owner_email, product_id); the composite unique
// index backs the conditional insert in the repository.
type WishlistItem struct {
	BaseModel
	OwnerEmail string    `json:"owner_email" gorm:"size:255;not null;uniqueIndex:idx_wishlist_owner_product"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_owner_product"`
}
