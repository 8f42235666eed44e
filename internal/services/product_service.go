// internal/services/product_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

type CreateProductInput struct {
	ItemName     string   `json:"item_name" validate:"required,min=2,max=255"`
	MarketName   string   `json:"market_name" validate:"required,max=150"`
	VendorName   string   `json:"vendor_name" validate:"max=100"`
	PricePerUnit float64  `json:"price_per_unit" validate:"required,gt=0"`
	Images       []string `json:"images" validate:"dive,url"`
}

// Create files a product for review. New listings always start pending,
// whatever the caller sends.
func (s *ProductService) Create(vendorEmail string, input CreateProductInput) (*models.Product, error) {
	now := time.Now()
	product := &models.Product{
		VendorEmail:  vendorEmail,
		VendorName:   input.VendorName,
		MarketName:   input.MarketName,
		Date:         now,
		ItemName:     input.ItemName,
		PricePerUnit: input.PricePerUnit,
		PriceHistory: models.PriceHistory{{Date: now, Price: input.PricePerUnit}},
		Images:       input.Images,
		Status:       models.ReviewStatusPending,
	}
	if err := s.products.Create(product); err != nil {
		return nil, apperr.Internal("failed to create product", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"vendor":     vendorEmail,
	}).Info("Product submitted for review")
	return product, nil
}

type UpdateProductInput struct {
	ItemName     string   `json:"item_name" validate:"omitempty,min=2,max=255"`
	MarketName   string   `json:"market_name" validate:"omitempty,max=150"`
	PricePerUnit float64  `json:"price_per_unit" validate:"omitempty,gt=0"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
}

// Update edits a listing. Only the owning vendor (or an admin) may touch it,
// and a price change appends to the price history rather than rewriting it.
func (s *ProductService) Update(id uuid.UUID, callerEmail string, callerRole models.Role, input UpdateProductInput) (*models.Product, error) {
	product, err := s.getOwned(id, callerEmail, callerRole)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.ItemName != "" {
		updates["item_name"] = input.ItemName
	}
	if input.MarketName != "" {
		updates["market_name"] = input.MarketName
	}
	if len(input.Images) > 0 {
		updates["images"] = pq.StringArray(input.Images)
	}
	if input.PricePerUnit > 0 && input.PricePerUnit != product.PricePerUnit {
		updates["price_per_unit"] = input.PricePerUnit
		updates["price_history"] = append(product.PriceHistory, models.PricePoint{
			Date:  time.Now(),
			Price: input.PricePerUnit,
		})
	}
	if len(updates) == 0 {
		return product, nil
	}
	updates["date"] = time.Now()

	if err := s.products.Update(id, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to update product", err)
	}

	updated, err := s.products.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load product", err)
	}
	return updated, nil
}

func (s *ProductService) Delete(id uuid.UUID, callerEmail string, callerRole models.Role) error {
	if _, err := s.getOwned(id, callerEmail, callerRole); err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		return apperr.Internal("failed to delete product", err)
	}
	return nil
}

func (s *ProductService) ListByVendor(email string, params utils.PaginationParams) ([]models.Product, int64, error) {
	products, total, err := s.products.ListByVendor(email, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list products", err)
	}
	return products, total, nil
}

// ListAll is the admin review queue: every listing regardless of status.
func (s *ProductService) ListAll(filter repository.ProductFilter, params utils.PaginationParams) ([]models.Product, int64, error) {
	products, total, err := s.products.List(filter, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list products", err)
	}
	return products, total, nil
}

// ListApproved is the public catalog: approved listings only.
func (s *ProductService) ListApproved(search, marketName string, params utils.PaginationParams) ([]models.Product, int64, error) {
	filter := repository.ProductFilter{
		Search:     search,
		MarketName: marketName,
		Status:     models.ReviewStatusApproved,
	}
	products, total, err := s.products.List(filter, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list products", err)
	}
	return products, total, nil
}

// Get returns a single listing. Approved listings are public; pending and
// rejected ones are visible only to the owning vendor and admins.
func (s *ProductService) Get(id uuid.UUID, callerEmail string, callerRole models.Role) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to load product", err)
	}

	if product.Status != models.ReviewStatusApproved &&
		callerRole != models.RoleAdmin &&
		product.VendorEmail != callerEmail {
		return nil, apperr.NotFound("product not found")
	}
	return product, nil
}

// Approve moves a listing to approved and clears any leftover rejection
// fields from an earlier pass through review.
func (s *ProductService) Approve(id uuid.UUID) (*models.Product, error) {
	found, err := s.products.SetReviewStatus(id, models.ReviewStatusApproved, "", "")
	if err != nil {
		return nil, apperr.Internal("failed to approve product", err)
	}
	if !found {
		return nil, apperr.NotFound("product not found")
	}
	return s.products.GetByID(id)
}

type RejectInput struct {
	Reason   string `json:"reason" validate:"required,max=255"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

func (s *ProductService) Reject(id uuid.UUID, input RejectInput) (*models.Product, error) {
	found, err := s.products.SetReviewStatus(id, models.ReviewStatusRejected, input.Reason, input.Feedback)
	if err != nil {
		return nil, apperr.Internal("failed to reject product", err)
	}
	if !found {
		return nil, apperr.NotFound("product not found")
	}
	return s.products.GetByID(id)
}

func (s *ProductService) getOwned(id uuid.UUID, callerEmail string, callerRole models.Role) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to load product", err)
	}
	if callerRole != models.RoleAdmin && product.VendorEmail != callerEmail {
		return nil, apperr.Forbidden("you do not own this product")
	}
	return product, nil
}
