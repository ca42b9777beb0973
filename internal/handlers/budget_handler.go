package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/services"
)

// BudgetHandler handles per-month allocation requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// UpdateBudgetRequest represents the payload for changing an allocation.
type UpdateBudgetRequest struct {
	AllocatedAmount float64 `json:"allocated_amount" binding:"min=0"`
}

// ListBudgets returns the month's allocations.
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ListMonthlyBudgets(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// UpdateBudget changes one allocation in an open month.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "budgetID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateMonthlyBudget(userID, monthID, budgetID, req.AllocatedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}
