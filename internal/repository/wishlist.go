// internal/repository/wishlist.go
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
)

type WishlistRepository interface {
	// Add inserts conditionally: the (owner, product) pair is unique and a
	// second add reports ErrDuplicate without touching the existing row.
	Add(item *models.WishlistItem) error
	ListByOwner(email string) ([]models.WishlistItem, error)
	Delete(id uuid.UUID, ownerEmail string) (bool, error)
}

type gormWishlistRepository struct {
	db *gorm.DB
}

func NewGormWishlistRepository(db *gorm.DB) WishlistRepository {
	return &gormWishlistRepository{db: db}
}

func (r *gormWishlistRepository) Add(item *models.WishlistItem) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_email"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *gormWishlistRepository) ListByOwner(email string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Where("owner_email = ?", email).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *gormWishlistRepository) Delete(id uuid.UUID, ownerEmail string) (bool, error) {
	result := r.db.Delete(&models.WishlistItem{}, "id = ? AND owner_email = ?", id, ownerEmail)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}
