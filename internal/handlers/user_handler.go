// internal/handlers/user_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users (admin)
func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultListLimit)
	emailFilter := c.Query("email")

	users, total, err := h.users.List(emailFilter, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

type updateRoleRequest struct {
	Role models.Role `json:"role" validate:"required"`
}

// UpdateRole handles PATCH /users/updateRole/:id (admin)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user id", nil)
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	if err := h.users.UpdateRole(id, req.Role); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Role updated"})
}
