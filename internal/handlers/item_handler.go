package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/pagination"
	"monthwise/internal/services"
)

const spentOnLayout = "2006-01-02"

// ItemHandler handles discrete spending item requests.
type ItemHandler struct {
	itemService services.ItemServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents the payload for recording a spend.
type CreateItemRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"min=0"`
	SpentOn     string  `json:"spent_on" binding:"required"`
}

// UpdateItemRequest represents the payload for editing a spend.
type UpdateItemRequest struct {
	CategoryID  *uint    `json:"category_id"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Amount      *float64 `json:"amount" binding:"omitempty,min=0"`
	SpentOn     *string  `json:"spent_on"`
}

func parseSpentOn(value string) (time.Time, error) {
	spentOn, err := time.Parse(spentOnLayout, value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "spent_on must be YYYY-MM-DD")
	}
	return spentOn, nil
}

// ListItems returns the month's items, newest spend first, paginated.
func (h *ItemHandler) ListItems(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.itemService.ListItems(userID, monthID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateItem records a spend against an open month.
func (h *ItemHandler) CreateItem(c *gin.Context) {
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

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	spentOn, err := parseSpentOn(req.SpentOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.CreateItem(userID, monthID, req.CategoryID, req.Description, req.Amount, spentOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem edits a spend in an open month.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
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

	itemID, err := parsePathID(c, "itemID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var spentOn *time.Time
	if req.SpentOn != nil {
		parsed, err := parseSpentOn(*req.SpentOn)
		if err != nil {
			respondWithError(c, err)
			return
		}
		spentOn = &parsed
	}

	item, err := h.itemService.UpdateItem(userID, monthID, itemID, req.CategoryID, req.Description, req.Amount, spentOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a spend from an open month.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
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

	itemID, err := parsePathID(c, "itemID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(userID, monthID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
