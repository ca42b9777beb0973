package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
	"monthwise/internal/services"
)

// SettingsHandler handles the user's standing configuration: savings fields
// and display currency.
type SettingsHandler struct {
	userService services.UserServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(userService services.UserServicer) *SettingsHandler {
	return &SettingsHandler{userService: userService}
}

// AmountRequest carries a single monetary value.
type AmountRequest struct {
	Amount float64 `json:"amount" binding:"min=0"`
}

// CurrencyRequest carries an ISO 4217 currency code.
type CurrencyRequest struct {
	Currency string `json:"currency" binding:"required,iso4217"`
}

// GetSavings returns the user's savings fields.
func (h *SettingsHandler) GetSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"savings":            user.Savings,
		"savings_goal":       user.SavingsGoal,
		"retirement_savings": user.RetirementSavings,
	})
}

// UpdateSavings sets the current savings balance.
func (h *SettingsHandler) UpdateSavings(c *gin.Context) {
	h.updateAmount(c, h.userService.UpdateSavings)
}

// UpdateSavingsGoal sets the savings target.
func (h *SettingsHandler) UpdateSavingsGoal(c *gin.Context) {
	h.updateAmount(c, h.userService.UpdateSavingsGoal)
}

// GetRetirementSavings returns the retirement savings balance.
func (h *SettingsHandler) GetRetirementSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"retirement_savings": user.RetirementSavings})
}

// UpdateRetirementSavings sets the retirement savings balance.
func (h *SettingsHandler) UpdateRetirementSavings(c *gin.Context) {
	h.updateAmount(c, h.userService.UpdateRetirementSavings)
}

func (h *SettingsHandler) updateAmount(c *gin.Context, update func(uint, float64) (*models.User, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := update(userID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// GetCurrency returns the user's display currency.
func (h *SettingsHandler) GetCurrency(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": user.Currency})
}

// UpdateCurrency sets the user's display currency.
func (h *SettingsHandler) UpdateCurrency(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateCurrency(userID, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
