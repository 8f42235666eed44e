// internal/handlers/auth_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	user, err := h.auth.Register(input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, user)
}

// IssueToken handles POST /jwt
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var input services.TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	token, err := h.auth.IssueToken(input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"token": token})
}

// RecordLogin handles PATCH /update-last-login
func (h *AuthHandler) RecordLogin(c *gin.Context) {
	var input services.LastLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	// The sign-in is always recorded for the authenticated account.
	if email, ok := utils.GetEmailFromContext(c); ok {
		input.Email = email
	}

	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	if err := h.auth.RecordLogin(input); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Last sign-in recorded"})
}
