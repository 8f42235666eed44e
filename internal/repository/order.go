// internal/repository/order.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

// VendorOrderRow is one paid line item joined with its order header, already
// narrowed to a vendor's products by the store query.
type VendorOrderRow struct {
	OrderID    uuid.UUID  `json:"order_id"`
	BuyerEmail string     `json:"buyer_email"`
	BuyerName  string     `json:"buyer_name"`
	PaidAt     *time.Time `json:"paid_at"`
	ProductID  uuid.UUID  `json:"product_id"`
	ItemName   string     `json:"item_name"`
	Image      string     `json:"image"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
}

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uuid.UUID) (*models.Order, error)
	ListPaid(params utils.PaginationParams) ([]models.Order, int64, error)
	ListByBuyer(email string, params utils.PaginationParams) ([]models.Order, int64, error)
	// ListPaidItemsByProductIDs pushes the vendor filter into the store: only
	// line items referencing the given product ids are scanned, and
	// pagination happens in the query rather than in memory.
	ListPaidItemsByProductIDs(productIDs []uuid.UUID, params utils.PaginationParams) ([]VendorOrderRow, int64, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(order *models.Order) error {
	return translate(r.db.Create(order).Error)
}

func (r *gormOrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *gormOrderRepository) ListPaid(params utils.PaginationParams) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPaid)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, translate(err)
	}

	return orders, total, nil
}

func (r *gormOrderRepository) ListByBuyer(email string, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("buyer_email = ?", email)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, translate(err)
	}

	return orders, total, nil
}

func (r *gormOrderRepository) ListPaidItemsByProductIDs(productIDs []uuid.UUID, params utils.PaginationParams) ([]VendorOrderRow, int64, error) {
	if len(productIDs) == 0 {
		return nil, 0, nil
	}

	base := r.db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderStatusPaid).
		Where("order_items.product_id IN ?", productIDs).
		Where("orders.deleted_at IS NULL AND order_items.deleted_at IS NULL")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var rows []VendorOrderRow
	err := base.
		Select(`orders.id AS order_id, orders.buyer_email, orders.buyer_name,
			orders.paid_at, order_items.product_id, order_items.item_name,
			order_items.image, order_items.price, order_items.quantity`).
		Order("orders.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return rows, total, nil
}
