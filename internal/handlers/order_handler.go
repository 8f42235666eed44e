// internal/handlers/order_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	BuyerName string `json:"buyer_name"`
}

// Create handles POST /create-order
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	// Body is optional; an empty body means the profile name is unknown.
	_ = c.ShouldBindJSON(&req)

	email, _ := utils.GetEmailFromContext(c)
	order, err := h.orders.CreateOrderFromCart(email, req.BuyerName)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, order)
}

// CreateIntent handles POST /create-payment-intent
func (h *OrderHandler) CreateIntent(c *gin.Context) {
	var input services.SingleIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	intent, err := h.orders.CreateIntentForProduct(email, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, intent)
}

// CreateIntentForCart handles POST /create-payment-intent-cart
func (h *OrderHandler) CreateIntentForCart(c *gin.Context) {
	email, _ := utils.GetEmailFromContext(c)
	intent, err := h.orders.CreateIntentForCart(email)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, intent)
}

type savePaymentRequest struct {
	services.SavePaymentInput
	BuyerName string `json:"buyer_name"`
}

// SavePayment handles POST /save-payment
func (h *OrderHandler) SavePayment(c *gin.Context) {
	var req savePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req.SavePaymentInput); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	order, err := h.orders.SavePayment(email, req.BuyerName, req.SavePaymentInput)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, order)
}

// Mine handles GET /orders (buyer)
func (h *OrderHandler) Mine(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultOrderLimit)
	email, _ := utils.GetEmailFromContext(c)

	orders, total, err := h.orders.BuyerOrders(email, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// Admin handles GET /admin/orders (admin)
func (h *OrderHandler) Admin(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultOrderLimit)

	lines, total, err := h.orders.AdminOrders(params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(lines, total, params))
}

// Vendor handles GET /vendor/orders (vendor)
func (h *OrderHandler) Vendor(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultOrderLimit)
	email, _ := utils.GetEmailFromContext(c)

	rows, total, err := h.orders.VendorOrders(email, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}
