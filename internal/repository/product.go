// internal/repository/product.go
package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type ProductFilter struct {
	Search     string
	MarketName string
	Status     models.ReviewStatus
}

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uuid.UUID) (*models.Product, error)
	// GetByIDs resolves line-item references in one round trip for the order
	// projections; missing ids are simply absent from the result.
	GetByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
	IDsByVendor(email string) ([]uuid.UUID, error)
	ListByVendor(email string, params utils.PaginationParams) ([]models.Product, int64, error)
	List(filter ProductFilter, params utils.PaginationParams) ([]models.Product, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
	SetReviewStatus(id uuid.UUID, status models.ReviewStatus, reason, feedback string) (bool, error)
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) Create(product *models.Product) error {
	return translate(r.db.Create(product).Error)
}

func (r *gormProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *gormProductRepository) GetByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	result := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate(err)
	}

	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *gormProductRepository) IDsByVendor(email string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Product{}).
		Where("vendor_email = ?", email).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func (r *gormProductRepository) ListByVendor(email string, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Where("vendor_email = ?", email)
	return r.paginate(query, params)
}

func (r *gormProductRepository) List(filter ProductFilter, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MarketName != "" {
		query = query.Where("market_name = ?", filter.MarketName)
	}
	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(item_name) LIKE ? OR LOWER(market_name) LIKE ?", searchTerm, searchTerm)
	}

	return r.paginate(query, params)
}

func (r *gormProductRepository) paginate(query *gorm.DB, params utils.PaginationParams) ([]models.Product, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "item_name", "price_per_unit", "market_name", "date"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, translate(err)
	}

	return products, total, nil
}

func (r *gormProductRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormProductRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormProductRepository) SetReviewStatus(id uuid.UUID, status models.ReviewStatus, reason, feedback string) (bool, error) {
	// Approval always clears the rejection fields in the same statement.
	result := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             status,
			"rejection_reason":   reason,
			"rejection_feedback": feedback,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}
