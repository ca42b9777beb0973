package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/services"
)

// ExportHandler handles whole-account JSON export and import.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportJSON streams the user's full label-keyed dump.
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	export, err := h.exportService.Export(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="monthwise-export.json"`)
	c.JSON(http.StatusOK, export)
}

// ImportJSON wipes the user's data and replays the uploaded dump.
func (h *ExportHandler) ImportJSON(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var data services.UserExport
	if err := c.ShouldBindJSON(&data); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.exportService.Import(userID, &data); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "import complete"})
}
