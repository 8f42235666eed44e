// internal/services/wishlist_service.go
package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
)

type WishlistService struct {
	wishlist repository.WishlistRepository
	products repository.ProductRepository
}

func NewWishlistService(wishlist repository.WishlistRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Add saves a product once per owner. A second add of the same product is a
// conflict, decided by the store's conditional insert rather than a
// read-then-write check.
func (s *WishlistService) Add(ownerEmail string, productID uuid.UUID) (*models.WishlistItem, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to load product", err)
	}

	item := &models.WishlistItem{
		OwnerEmail: ownerEmail,
		ProductID:  productID,
	}
	if err := s.wishlist.Add(item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("product is already in the wishlist")
		}
		return nil, apperr.Internal("failed to add wishlist item", err)
	}
	return item, nil
}

// WishlistEntry pairs the saved row with the current product so the client
// can render price and image without a second round trip.
type WishlistEntry struct {
	models.WishlistItem
	Product *models.Product `json:"product,omitempty"`
}

func (s *WishlistService) List(ownerEmail string) ([]WishlistEntry, error) {
	items, err := s.wishlist.ListByOwner(ownerEmail)
	if err != nil {
		return nil, apperr.Internal("failed to list wishlist", err)
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	productsByID, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, apperr.Internal("failed to resolve products", err)
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, item := range items {
		entry := WishlistEntry{WishlistItem: item}
		if product, ok := productsByID[item.ProductID]; ok {
			p := product
			entry.Product = &p
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *WishlistService) Remove(id uuid.UUID, ownerEmail string) error {
	removed, err := s.wishlist.Delete(id, ownerEmail)
	if err != nil {
		return apperr.Internal("failed to remove wishlist item", err)
	}
	if !removed {
		return apperr.NotFound("wishlist item not found")
	}
	return nil
}
