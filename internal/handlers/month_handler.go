package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/pagination"
	"monthwise/internal/services"
)

// MonthHandler handles the month lifecycle: listing, current-month
// resolution, summaries, closing, and snapshot download.
type MonthHandler struct {
	monthService services.MonthServicer
}

// NewMonthHandler creates a new MonthHandler.
func NewMonthHandler(monthService services.MonthServicer) *MonthHandler {
	return &MonthHandler{monthService: monthService}
}

// ListMonths returns the user's months, newest first, paginated.
func (h *MonthHandler) ListMonths(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.monthService.ListMonths(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCurrentMonth resolves the month row for the current calendar period,
// creating and seeding it if needed, and returns its summary.
func (h *MonthHandler) GetCurrentMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := h.monthService.ResolveCurrentMonth(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.monthService.Summarize(userID, month.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonth returns the computed summary for one month.
func (h *MonthHandler) GetMonth(c *gin.Context) {
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

	summary, err := h.monthService.Summarize(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CloseMonth transitions a month to closed, persisting its report snapshot.
func (h *MonthHandler) CloseMonth(c *gin.Context) {
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

	month, err := h.monthService.CloseMonth(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, month)
}

// GetPDF streams the stored report for a closed month.
func (h *MonthHandler) GetPDF(c *gin.Context) {
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

	pdfData, err := h.monthService.GetSnapshot(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := h.monthService.GetMonth(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("summary-%04d-%02d.pdf", month.Year, month.Month)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfData)
}
