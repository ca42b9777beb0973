package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/services"
)

// IncomeHandler handles month-scoped income entry requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest represents the payload for adding an income entry.
type CreateIncomeRequest struct {
	Label  string  `json:"label" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"min=0"`
}

// UpdateIncomeRequest represents the payload for updating an income entry.
type UpdateIncomeRequest struct {
	Label  *string  `json:"label" binding:"omitempty,max=100"`
	Amount *float64 `json:"amount" binding:"omitempty,min=0"`
}

// ListIncome returns the month's income entries.
func (h *IncomeHandler) ListIncome(c *gin.Context) {
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

	entries, err := h.incomeService.ListIncome(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CreateIncome adds an income entry to an open month.
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
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

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.incomeService.CreateIncome(userID, monthID, req.Label, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateIncome changes an income entry in an open month.
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
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

	entryID, err := parsePathID(c, "entryID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.incomeService.UpdateIncome(userID, monthID, entryID, req.Label, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteIncome removes an income entry from an open month.
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
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

	entryID, err := parsePathID(c, "entryID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(userID, monthID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "income entry deleted"})
}
