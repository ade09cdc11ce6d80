package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
)

// exportHandler produces downstream exports of reviewed data.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerExportRoutes registers export routes.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	rg.GET("/export", h.exportReviewed)
}

// exportReviewed godoc
// @Summary Export reviewed transactions as CSV
// @Description Renders all reviewed transactions of an engagement as a CSV download, one row per leaf transaction.
// @Tags export
// @Produce text/csv
// @Param engagementId query string true "Engagement ID"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /export [get]
func (h *exportHandler) exportReviewed(c *gin.Context) {
	engagementID := c.Query("engagementId")
	if engagementID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "engagementId is required"})
		return
	}

	csvContent, err := h.exportService.ExportReviewedCSV(c.Request.Context(), engagementID)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}

	filename := fmt.Sprintf("reviewed-%s.csv", engagementID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(csvContent))
}
