package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monthwise/internal/services"
)

// StatsHandler serves the derived statistics payload.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats recomputes and returns the user's statistics.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.ComputeStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
