package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finanzas/internal/pagination"
	"finanzas/internal/services"
)

// SnapshotHandler serves persisted period snapshots.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// ListPeriods lists the periods with a saved snapshot.
// @Summary     List periods
// @Description Get the saved period snapshots, newest first
// @Tags        periods
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.PeriodSummary] "Paginated periods"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Store unavailable"
// @Router      /periods [get]
func (h *SnapshotHandler) ListPeriods(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.snapshotService.ListPeriods(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSnapshot returns the snapshot saved for one period.
// @Summary     Get a period snapshot
// @Description Get the salary, amounts and extras saved under a YYYY-MM period
// @Tags        periods
// @Produce     json
// @Security    BearerAuth
// @Param       period path string true "Period as YYYY-MM"
// @Success     200 {object} map[string]models.PeriodSnapshot "Snapshot"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Failure     503 {object} ErrorResponse "Store unavailable"
// @Router      /periods/{period} [get]
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period := c.Param("period")
	snapshot, err := h.snapshotService.GetSnapshot(c.Request.Context(), userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period, "snapshot": snapshot})
}
