// internal/handlers/vendor_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type VendorHandler struct {
	vendors *services.VendorService
}

func NewVendorHandler(vendors *services.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// Apply handles POST /vendors/apply
func (h *VendorHandler) Apply(c *gin.Context) {
	var input services.ApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	// The application is always filed for the authenticated account.
	if email, ok := utils.GetEmailFromContext(c); ok {
		input.ApplicantEmail = email
	}

	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	app, err := h.vendors.Apply(input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, app)
}

// List handles GET /vendor-requests (admin)
func (h *VendorHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultListLimit)
	status := models.ApplicationStatus(c.Query("status"))

	apps, total, err := h.vendors.List(status, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(apps, total, params))
}

type decideRequest struct {
	Approve bool `json:"approve"`
}

// Decide handles PATCH /vendor-requests/:id (admin)
func (h *VendorHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application id", nil)
		return
	}

	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	app, err := h.vendors.Decide(id, req.Approve)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, app)
}
