// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/config"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type OrderService struct {
	orders   repository.OrderRepository
	cart     repository.CartRepository
	products repository.ProductRepository
	provider PaymentProvider
	cfg      config.PaymentConfig
}

func NewOrderService(
	orders repository.OrderRepository,
	cart repository.CartRepository,
	products repository.ProductRepository,
	provider PaymentProvider,
	cfg config.PaymentConfig,
) *OrderService {
	return &OrderService{
		orders:   orders,
		cart:     cart,
		products: products,
		provider: provider,
		cfg:      cfg,
	}
}

// minorUnits converts a decimal price to integer minor units. All amounts
// sent to the payment provider pass through here; float arithmetic never
// reaches the wire.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateOrderFromCart freezes the buyer's cart into a pending order. Prices
// come from the stored cart snapshots, never from the request.
func (s *OrderService) CreateOrderFromCart(buyerEmail, buyerName string) (*models.Order, error) {
	items, err := s.cart.ListByBuyer(buyerEmail)
	if err != nil {
		return nil, apperr.Internal("failed to load cart", err)
	}
	if len(items) == 0 {
		return nil, apperr.Invalid("cart is empty")
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.PricePerUnit <= 0 || item.Quantity < 1 {
			return nil, apperr.Invalid("cart contains an unpriceable item")
		}
		total += item.PricePerUnit * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			ItemName:  item.ItemName,
			Image:     item.Image,
			Price:     item.PricePerUnit,
			Quantity:  item.Quantity,
		})
	}

	order := &models.Order{
		BuyerEmail:  buyerEmail,
		BuyerName:   buyerName,
		TotalAmount: math.Round(total*100) / 100,
		Status:      models.OrderStatusPending,
		Items:       orderItems,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, apperr.Internal("failed to create order", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"buyer":    buyerEmail,
		"total":    order.TotalAmount,
	}).Info("Order created")
	return order, nil
}

type SingleIntentInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// CreateIntentForProduct prices a single-product checkout from the stored
// listing and opens a payment intent. The request carries no amount.
func (s *OrderService) CreateIntentForProduct(buyerEmail string, input SingleIntentInput) (*PaymentIntentResult, error) {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.GetByID(input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Invalid("product no longer exists")
		}
		return nil, apperr.Internal("failed to load product", err)
	}
	if product.PricePerUnit <= 0 {
		return nil, apperr.Invalid("product has no valid price")
	}

	amount := minorUnits(product.PricePerUnit) * int64(quantity)
	return s.openIntent(amount, map[string]string{
		"buyer_email": buyerEmail,
		"product_id":  product.ID.String(),
		"quantity":    fmt.Sprintf("%d", quantity),
	})
}

// CreateIntentForCart prices the whole cart against the current listings and
// opens one payment intent for the total. A cart row whose product has since
// vanished fails the request rather than silently shrinking the charge.
func (s *OrderService) CreateIntentForCart(buyerEmail string) (*PaymentIntentResult, error) {
	items, err := s.cart.ListByBuyer(buyerEmail)
	if err != nil {
		return nil, apperr.Internal("failed to load cart", err)
	}
	if len(items) == 0 {
		return nil, apperr.Invalid("cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	productsByID, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, apperr.Internal("failed to resolve products", err)
	}

	var amount int64
	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, apperr.Invalid("a cart item references a product that no longer exists")
		}
		if product.PricePerUnit <= 0 || item.Quantity < 1 {
			return nil, apperr.Invalid("cart contains an unpriceable item")
		}
		amount += minorUnits(product.PricePerUnit) * int64(item.Quantity)
	}

	return s.openIntent(amount, map[string]string{
		"buyer_email": buyerEmail,
		"checkout":    "cart",
	})
}

func (s *OrderService) openIntent(amount int64, metadata map[string]string) (*PaymentIntentResult, error) {
	if amount < s.cfg.MinimumChargeCents {
		return nil, apperr.Invalid(
			fmt.Sprintf("order total is below the minimum charge of %d cents", s.cfg.MinimumChargeCents))
	}

	intent, err := s.provider.CreateIntent(amount, s.cfg.Currency, metadata)
	if err != nil {
		// No retry: the client repeats the request if it wants another try.
		return nil, apperr.External("payment provider rejected the request", err)
	}
	return intent, nil
}

type SavePaymentItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type SavePaymentInput struct {
	PaymentIntentID string            `json:"payment_intent_id" validate:"required"`
	FromCart        bool              `json:"from_cart"`
	Items           []SavePaymentItem `json:"items" validate:"required,min=1,dive"`
}

// SavePayment records a completed checkout as a paid order. Line items are
// repriced from the stored listings so the recorded total matches what the
// server would have charged. For cart checkouts the cart is cleared once the
// order row is in.
func (s *OrderService) SavePayment(buyerEmail, buyerName string, input SavePaymentInput) (*models.Order, error) {
	if input.PaymentIntentID == "" {
		return nil, apperr.Invalid("payment intent id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperr.Invalid("a payment needs at least one item")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	productsByID, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, apperr.Internal("failed to resolve products", err)
	}

	now := time.Now()
	var total float64
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperr.Invalid("item quantity must be at least one")
		}
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, apperr.Invalid("an item references a product that no longer exists")
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		total += product.PricePerUnit * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			ItemName:  product.ItemName,
			Image:     image,
			Price:     product.PricePerUnit,
			Quantity:  item.Quantity,
		})
	}

	order := &models.Order{
		BuyerEmail:      buyerEmail,
		BuyerName:       buyerName,
		TotalAmount:     math.Round(total*100) / 100,
		Status:          models.OrderStatusPaid,
		PaymentIntentID: input.PaymentIntentID,
		PaidAt:          &now,
		Items:           orderItems,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, apperr.Internal("failed to record payment", err)
	}

	if input.FromCart {
		if err := s.cart.Clear(buyerEmail); err != nil {
			// The order is already recorded; a stale cart is recoverable.
			logrus.WithError(err).WithField("buyer", buyerEmail).Warn("Failed to clear cart after payment")
		}
	}

	logrus.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"buyer":          buyerEmail,
		"payment_intent": input.PaymentIntentID,
	}).Info("Payment recorded")
	return order, nil
}

// OrderLine is one flattened line item of the admin projection, joined with
// the current product where it still exists.
type OrderLine struct {
	OrderID    uuid.UUID  `json:"order_id"`
	BuyerEmail string     `json:"buyer_email"`
	BuyerName  string     `json:"buyer_name"`
	PaidAt     *time.Time `json:"paid_at"`
	ProductID  uuid.UUID  `json:"product_id"`
	ItemName   string     `json:"item_name"`
	MarketName string     `json:"market_name"`
	Image      string     `json:"image"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
}

// AdminOrders lists every paid order, one row per line item. Line items whose
// product has been deleted still appear, with placeholder product fields; a
// missing listing never hides a sale.
func (s *OrderService) AdminOrders(params utils.PaginationParams) ([]OrderLine, int64, error) {
	orders, total, err := s.orders.ListPaid(params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list orders", err)
	}

	var ids []uuid.UUID
	for _, order := range orders {
		for _, item := range order.Items {
			ids = append(ids, item.ProductID)
		}
	}
	productsByID, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, 0, apperr.Internal("failed to resolve products", err)
	}

	var lines []OrderLine
	for _, order := range orders {
		for _, item := range order.Items {
			line := OrderLine{
				OrderID:    order.ID,
				BuyerEmail: order.BuyerEmail,
				BuyerName:  order.BuyerName,
				PaidAt:     order.PaidAt,
				ProductID:  item.ProductID,
				ItemName:   item.ItemName,
				Image:      item.Image,
				Price:      item.Price,
				Quantity:   item.Quantity,
				MarketName: "N/A",
			}
			if product, ok := productsByID[item.ProductID]; ok {
				line.MarketName = product.MarketName
			} else if line.ItemName == "" {
				line.ItemName = "Unknown Product"
			}
			lines = append(lines, line)
		}
	}
	return lines, total, nil
}

// VendorOrders lists the paid line items that reference the vendor's own
// products. The narrowing happens in the store query; other vendors' items
// are never loaded.
func (s *OrderService) VendorOrders(vendorEmail string, params utils.PaginationParams) ([]repository.VendorOrderRow, int64, error) {
	ids, err := s.products.IDsByVendor(vendorEmail)
	if err != nil {
		return nil, 0, apperr.Internal("failed to load vendor products", err)
	}
	if len(ids) == 0 {
		return nil, 0, nil
	}

	rows, total, err := s.orders.ListPaidItemsByProductIDs(ids, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list vendor orders", err)
	}
	return rows, total, nil
}

// BuyerOrders lists the caller's own orders, newest first.
func (s *OrderService) BuyerOrders(buyerEmail string, params utils.PaginationParams) ([]models.Order, int64, error) {
	orders, total, err := s.orders.ListByBuyer(buyerEmail, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list orders", err)
	}
	return orders, total, nil
}
