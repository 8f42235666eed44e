// internal/repository/cart.go
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
)

type CartRepository interface {
	// AddOrIncrement upserts on (buyer, product): a repeated add bumps the
	// stored quantity instead of creating a second row.
	AddOrIncrement(item *models.CartItem) error
	GetByID(id uuid.UUID, buyerEmail string) (*models.CartItem, error)
	ListByBuyer(email string) ([]models.CartItem, error)
	// AdjustQuantity applies delta only while quantity stays >= 1; the guard
	// lives in the UPDATE itself. Returns false when the guard (or the row)
	// did not hold.
	AdjustQuantity(id uuid.UUID, buyerEmail string, delta int) (bool, error)
	Delete(id uuid.UUID, buyerEmail string) (bool, error)
	Clear(buyerEmail string) error
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func (r *gormCartRepository) AddOrIncrement(item *models.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "buyer_email"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(item).Error
	return translate(err)
}

func (r *gormCartRepository) GetByID(id uuid.UUID, buyerEmail string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ? AND buyer_email = ?", id, buyerEmail).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *gormCartRepository) ListByBuyer(email string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("buyer_email = ?", email).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *gormCartRepository) AdjustQuantity(id uuid.UUID, buyerEmail string, delta int) (bool, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("id = ? AND buyer_email = ? AND quantity + ? >= 1", id, buyerEmail, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormCartRepository) Delete(id uuid.UUID, buyerEmail string) (bool, error) {
	result := r.db.Delete(&models.CartItem{}, "id = ? AND buyer_email = ?", id, buyerEmail)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormCartRepository) Clear(buyerEmail string) error {
	return translate(r.db.Delete(&models.CartItem{}, "buyer_email = ?", buyerEmail).Error)
}
