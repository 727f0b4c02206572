package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
	"finanzas/internal/services"
)

// BudgetHandler handles working-state requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetPeriodRequest represents the request payload for selecting a period.
type SetPeriodRequest struct {
	Year  string `json:"year" binding:"required,period_year"`
	Month string `json:"month" binding:"required,period_month"`
}

// SetSalaryRequest carries the salary as typed. Non-digits are ignored and an
// empty value clears the salary.
type SetSalaryRequest struct {
	Salary string `json:"salary" binding:"max=64"`
}

// CategoryRequest represents one category of a bucket payload.
type CategoryRequest struct {
	ID            string   `json:"id" binding:"max=64"`
	Name          string   `json:"name" binding:"max=100"`
	Subcategories []string `json:"subcategories" binding:"omitempty,dive,max=100"`
	Icon          string   `json:"icon" binding:"max=64"`
	Color         string   `json:"color" binding:"omitempty,hex_color"`
}

// BucketRequest represents the request payload for creating or replacing a
// bucket. Omitted categories keep the current ones on update.
type BucketRequest struct {
	Name       string            `json:"name" binding:"max=100"`
	Percentage int               `json:"percentage" binding:"min=0,max=100"`
	Icon       string            `json:"icon" binding:"max=64"`
	Color      string            `json:"color" binding:"omitempty,hex_color"`
	Kind       models.BucketKind `json:"kind" binding:"omitempty,bucket_kind"`
	Role       models.BucketRole `json:"role" binding:"omitempty,bucket_role"`
	Categories []CategoryRequest `json:"categories" binding:"omitempty,dive"`
}

// AppearanceRequest represents an icon and/or color change.
type AppearanceRequest struct {
	Icon  *string `json:"icon" binding:"omitempty,min=1,max=64"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
}

// AmountRequest represents a recorded amount edit. An empty amount removes
// the entry.
type AmountRequest struct {
	CategoryID  string `json:"category_id" binding:"required,max=64"`
	Subcategory string `json:"subcategory" binding:"required,max=100"`
	Amount      string `json:"amount" binding:"max=64"`
}

// ExtraRequest represents an ad-hoc extra entry.
type ExtraRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Amount string `json:"amount" binding:"max=64"`
}

type partitionURI struct {
	Partition string `uri:"partition" binding:"required,amount_partition"`
}

type extraListURI struct {
	List string `uri:"list" binding:"required,extra_list"`
}

type extraIndexURI struct {
	List  string `uri:"list" binding:"required,extra_list"`
	Index int    `uri:"index" binding:"min=0"`
}

func (r BucketRequest) toInput() services.BucketInput {
	input := services.BucketInput{
		Name:       r.Name,
		Percentage: r.Percentage,
		Icon:       r.Icon,
		Color:      r.Color,
		Kind:       r.Kind,
		Role:       r.Role,
	}
	if r.Categories != nil {
		input.Categories = make([]models.Category, 0, len(r.Categories))
		for _, c := range r.Categories {
			input.Categories = append(input.Categories, models.Category{
				ID:            c.ID,
				Name:          c.Name,
				Subcategories: c.Subcategories,
				Icon:          c.Icon,
				Color:         c.Color,
			})
		}
	}
	return input
}

// GetState returns the working state.
// @Summary     Get working state
// @Description Get the buckets, salary, recorded amounts and extras of the current session
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]models.BudgetState "Working state"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /state [get]
func (h *BudgetHandler) GetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.budgetService.GetState(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}

// GetDashboard returns allocations, spend and balances.
// @Summary     Get dashboard
// @Description Recompute per-bucket totals, spend and balance from the working state
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]budget.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *BudgetHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.budgetService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// SetPeriod selects the reporting period.
// @Summary     Set period
// @Description Select the year and month the next save is snapshotted under
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetPeriodRequest true "Period"
// @Success     200 {object} map[string]models.BudgetState "Updated state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /period [put]
func (h *BudgetHandler) SetPeriod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	state, err := h.budgetService.SetPeriod(c.Request.Context(), userID, models.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}

// SetSalary sets the monthly salary.
// @Summary     Set salary
// @Description Store the salary as typed; only its digits are kept
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetSalaryRequest true "Salary"
// @Success     200 {object} map[string]budget.Dashboard "Recomputed dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /salary [put]
func (h *BudgetHandler) SetSalary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	dashboard, err := h.budgetService.SetSalary(c.Request.Context(), userID, req.Salary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// CreateBucket appends a bucket.
// @Summary     Create a bucket
// @Description Append a bucket. Without a body a blank bucket is created for editing.
// @Tags        buckets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BucketRequest false "Bucket details"
// @Success     201 {object} map[string]models.Bucket "Bucket created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /buckets [post]
func (h *BudgetHandler) CreateBucket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input *services.BucketInput
	if c.Request.ContentLength != 0 {
		var req BucketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
		in := req.toInput()
		input = &in
	}

	bucket, err := h.budgetService.CreateBucket(c.Request.Context(), userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUCKET", "bucket", bucket.ID, c.ClientIP(),
		map[string]interface{}{"name": bucket.Name, "percentage": bucket.Percentage})

	c.JSON(http.StatusCreated, gin.H{"bucket": bucket})
}

// UpdateBucket replaces a bucket's editable fields.
// @Summary     Update a bucket
// @Description Save an edited bucket. Requires a name and a percentage above zero.
// @Tags        buckets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Bucket ID"
// @Param       request body BucketRequest true "Bucket details"
// @Success     200 {object} map[string]models.Bucket "Bucket updated"
// @Failure     400 {object} ErrorResponse "Invalid input or incomplete bucket"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Router      /buckets/{id} [put]
func (h *BudgetHandler) UpdateBucket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	bucket, err := h.budgetService.UpdateBucket(c.Request.Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUCKET", "bucket", bucket.ID, c.ClientIP(),
		map[string]interface{}{"name": bucket.Name, "percentage": bucket.Percentage, "categories": len(bucket.Categories)})

	c.JSON(http.StatusOK, gin.H{"bucket": bucket})
}

// UpdateBucketAppearance changes a bucket's icon or color.
// @Summary     Update bucket appearance
// @Description Change the icon and/or color token of a bucket
// @Tags        buckets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Bucket ID"
// @Param       request body AppearanceRequest true "Appearance"
// @Success     200 {object} map[string]models.Bucket "Bucket updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Router      /buckets/{id}/appearance [patch]
func (h *BudgetHandler) UpdateBucketAppearance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AppearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	if req.Icon == nil && req.Color == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "icon or color is required"))
		return
	}

	bucket, err := h.budgetService.UpdateBucketAppearance(c.Request.Context(), userID, c.Param("id"), req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bucket": bucket})
}

// DeleteBucket removes a bucket.
// @Summary     Delete a bucket
// @Description Remove a bucket and its categories. Recorded amounts are kept.
// @Tags        buckets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bucket ID"
// @Success     200 {object} MessageResponse "Bucket deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Router      /buckets/{id} [delete]
func (h *BudgetHandler) DeleteBucket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bucketID := c.Param("id")
	if err := h.budgetService.DeleteBucket(c.Request.Context(), userID, bucketID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUCKET", "bucket", bucketID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bucket deleted successfully"})
}

// SetRecordedAmount records the amount of one subcategory.
// @Summary     Record an amount
// @Description Store the amount typed for a (category, subcategory) pair in a partition
// @Tags        amounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       partition path string        true "expense, investment-pesos or investment-usd"
// @Param       request   body AmountRequest true "Amount"
// @Success     200 {object} map[string]services.RecordedAmount "Recorded amount"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /amounts/{partition} [put]
func (h *BudgetHandler) SetRecordedAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var uri partitionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	amount, err := h.budgetService.SetRecordedAmount(c.Request.Context(), userID,
		models.AmountPartition(uri.Partition), req.CategoryID, req.Subcategory, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// PruneOrphanedAmounts removes amounts of deleted categories.
// @Summary     Prune orphaned amounts
// @Description Remove recorded amounts that no current bucket references
// @Tags        amounts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int "Number of removed entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /amounts/prune [post]
func (h *BudgetHandler) PruneOrphanedAmounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.budgetService.PruneOrphanedAmounts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if removed > 0 {
		h.auditService.Log(userID, "PRUNE_AMOUNTS", "budget", "", c.ClientIP(),
			map[string]interface{}{"removed": removed})
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ListExtras returns one extra-entry list.
// @Summary     List extras
// @Description Get the ad-hoc entries of the living, investment or leisure list
// @Tags        extras
// @Produce     json
// @Security    BearerAuth
// @Param       list path string true "living, investment or leisure"
// @Success     200 {object} map[string][]models.ExtraEntry "Entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /extras/{list} [get]
func (h *BudgetHandler) ListExtras(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var uri extraListURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	extras, err := h.budgetService.ListExtras(c.Request.Context(), userID, models.ExtraList(uri.List))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"extras": extras})
}

// AddExtra appends an entry to a list.
// @Summary     Add an extra
// @Description Append an ad-hoc entry to a list
// @Tags        extras
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       list    path string       true "living, investment or leisure"
// @Param       request body ExtraRequest true "Entry"
// @Success     201 {object} map[string][]models.ExtraEntry "Updated list"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /extras/{list} [post]
func (h *BudgetHandler) AddExtra(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var uri extraListURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var req ExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	extras, err := h.budgetService.AddExtra(c.Request.Context(), userID, models.ExtraList(uri.List),
		models.ExtraEntry{Name: req.Name, Amount: req.Amount})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"extras": extras})
}

// UpdateExtra replaces an entry of a list.
// @Summary     Update an extra
// @Description Replace the entry at a position of a list
// @Tags        extras
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       list    path string       true "living, investment or leisure"
// @Param       index   path int          true "Entry position"
// @Param       request body ExtraRequest true "Entry"
// @Success     200 {object} map[string][]models.ExtraEntry "Updated list"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /extras/{list}/{index} [put]
func (h *BudgetHandler) UpdateExtra(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var uri extraIndexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var req ExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	extras, err := h.budgetService.UpdateExtra(c.Request.Context(), userID, models.ExtraList(uri.List), uri.Index,
		models.ExtraEntry{Name: req.Name, Amount: req.Amount})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"extras": extras})
}

// RemoveExtra deletes an entry of a list.
// @Summary     Remove an extra
// @Description Delete the entry at a position of a list; later entries shift down
// @Tags        extras
// @Produce     json
// @Security    BearerAuth
// @Param       list  path string true "living, investment or leisure"
// @Param       index path int    true "Entry position"
// @Success     200 {object} map[string][]models.ExtraEntry "Updated list"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /extras/{list}/{index} [delete]
func (h *BudgetHandler) RemoveExtra(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var uri extraIndexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	extras, err := h.budgetService.RemoveExtra(c.Request.Context(), userID, models.ExtraList(uri.List), uri.Index)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"extras": extras})
}

// EndSession drops the user's working state from memory.
// @Summary     End session
// @Description Unmount the session. A save that has not fired yet is discarded.
// @Tags        budget
// @Security    BearerAuth
// @Success     204 "Session ended"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /session [delete]
func (h *BudgetHandler) EndSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.budgetService.EndSession(userID)
	c.Status(http.StatusNoContent)
}
