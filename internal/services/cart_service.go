// internal/services/cart_service.go
package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
)

type CartService struct {
	cart     repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{cart: cart, products: products}
}

type AddToCartInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// Add puts a product in the buyer's cart, snapshotting name, price, and image
// from the current listing. Adding an already-carted product increments the
// existing row's quantity through the store upsert.
func (s *CartService) Add(buyerEmail string, input AddToCartInput) (*models.CartItem, error) {
	product, err := s.products.GetByID(input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to load product", err)
	}
	if product.Status != models.ReviewStatusApproved {
		return nil, apperr.Invalid("product is not available for purchase")
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	item := &models.CartItem{
		BuyerEmail:   buyerEmail,
		ProductID:    product.ID,
		ItemName:     product.ItemName,
		PricePerUnit: product.PricePerUnit,
		Image:        image,
		Quantity:     quantity,
	}
	if err := s.cart.AddOrIncrement(item); err != nil {
		return nil, apperr.Internal("failed to add cart item", err)
	}
	return item, nil
}

func (s *CartService) List(buyerEmail string) ([]models.CartItem, error) {
	items, err := s.cart.ListByBuyer(buyerEmail)
	if err != nil {
		return nil, apperr.Internal("failed to list cart", err)
	}
	return items, nil
}

// AdjustQuantity applies delta to a cart row. The floor of one is enforced in
// the store's guarded update; when the guard refuses, the row is loaded once
// more to tell "would drop below one" apart from "no such row".
func (s *CartService) AdjustQuantity(id uuid.UUID, buyerEmail string, delta int) (*models.CartItem, error) {
	if delta == 0 {
		return nil, apperr.Invalid("quantity change must be non-zero")
	}

	applied, err := s.cart.AdjustQuantity(id, buyerEmail, delta)
	if err != nil {
		return nil, apperr.Internal("failed to adjust quantity", err)
	}
	if !applied {
		if _, getErr := s.cart.GetByID(id, buyerEmail); getErr != nil {
			if errors.Is(getErr, repository.ErrNotFound) {
				return nil, apperr.NotFound("cart item not found")
			}
			return nil, apperr.Internal("failed to load cart item", getErr)
		}
		return nil, apperr.Invalid("quantity cannot drop below one")
	}

	item, err := s.cart.GetByID(id, buyerEmail)
	if err != nil {
		return nil, apperr.Internal("failed to load cart item", err)
	}
	return item, nil
}

func (s *CartService) Remove(id uuid.UUID, buyerEmail string) error {
	removed, err := s.cart.Delete(id, buyerEmail)
	if err != nil {
		return apperr.Internal("failed to remove cart item", err)
	}
	if !removed {
		return apperr.NotFound("cart item not found")
	}
	return nil
}

func (s *CartService) Clear(buyerEmail string) error {
	if err := s.cart.Clear(buyerEmail); err != nil {
		return apperr.Internal("failed to clear cart", err)
	}
	return nil
}
