package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/services"
)

// FixedExpenseHandler handles recurring cost requests.
type FixedExpenseHandler struct {
	fixedExpenseService services.FixedExpenseServicer
}

// NewFixedExpenseHandler creates a new FixedExpenseHandler.
func NewFixedExpenseHandler(fixedExpenseService services.FixedExpenseServicer) *FixedExpenseHandler {
	return &FixedExpenseHandler{fixedExpenseService: fixedExpenseService}
}

// CreateFixedExpenseRequest represents the payload for creating a fixed expense.
type CreateFixedExpenseRequest struct {
	Label  string  `json:"label" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"min=0"`
}

// UpdateFixedExpenseRequest represents the payload for updating a fixed expense.
type UpdateFixedExpenseRequest struct {
	Label  *string  `json:"label" binding:"omitempty,max=100"`
	Amount *float64 `json:"amount" binding:"omitempty,min=0"`
}

// CreateFixedExpense adds a recurring cost.
func (h *FixedExpenseHandler) CreateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.fixedExpenseService.CreateFixedExpense(userID, req.Label, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListFixedExpenses returns all of the user's recurring costs.
func (h *FixedExpenseHandler) ListFixedExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.fixedExpenseService.ListFixedExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// UpdateFixedExpense changes a recurring cost's label or amount.
func (h *FixedExpenseHandler) UpdateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.fixedExpenseService.UpdateFixedExpense(userID, expenseID, req.Label, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteFixedExpense removes a recurring cost.
func (h *FixedExpenseHandler) DeleteFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.fixedExpenseService.DeleteFixedExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fixed expense deleted"})
}
