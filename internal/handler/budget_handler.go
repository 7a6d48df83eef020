package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/service"
)

// BudgetHandler handles category budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetItemRequest represents one category budget in a batch request
type BudgetItemRequest struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Amount     string    `json:"amount"`
}

// SetBudgetsRequest represents the JSON request for setting several budgets
type SetBudgetsRequest struct {
	Budgets []BudgetItemRequest `json:"budgets"`
}

// SetBudgetRequest represents the JSON request for a single category budget
type SetBudgetRequest struct {
	Amount string `json:"amount"`
}

// BudgetResponse represents a single stored budget
type BudgetResponse struct {
	CategoryID uuid.UUID `json:"categoryId"`
	PeriodKey  string    `json:"periodKey"`
	Amount     string    `json:"amount"`
}

// BudgetStatusResponse represents one category's budget utilization
type BudgetStatusResponse struct {
	CategoryID         uuid.UUID `json:"categoryId"`
	CategoryName       string    `json:"categoryName"`
	BudgetAmount       string    `json:"budgetAmount"`
	SpentAmount        string    `json:"spentAmount"`
	RemainingAmount    string    `json:"remainingAmount"`
	UtilizationPercent string    `json:"utilizationPercent"`
	OverBudget         bool      `json:"overBudget"`
}

// PeriodBudgetResponse represents the full budget picture for a period
type PeriodBudgetResponse struct {
	PeriodKey      string                 `json:"periodKey"`
	TotalBudget    string                 `json:"totalBudget"`
	TotalSpent     string                 `json:"totalSpent"`
	TotalRemaining string                 `json:"totalRemaining"`
	Categories     []BudgetStatusResponse `json:"categories"`
}

func toPeriodBudgetResponse(summary *service.PeriodBudgetSummary) PeriodBudgetResponse {
	resp := PeriodBudgetResponse{
		PeriodKey:      summary.PeriodKey,
		TotalBudget:    formatAmount(summary.TotalBudget),
		TotalSpent:     formatAmount(summary.TotalSpent),
		TotalRemaining: formatAmount(summary.TotalRemaining),
		Categories:     make([]BudgetStatusResponse, len(summary.Categories)),
	}
	for i, entry := range summary.Categories {
		resp.Categories[i] = BudgetStatusResponse{
			CategoryID:         entry.CategoryID,
			CategoryName:       entry.CategoryName,
			BudgetAmount:       formatAmount(entry.BudgetAmount),
			SpentAmount:        formatAmount(entry.SpentAmount),
			RemainingAmount:    formatAmount(entry.RemainingAmount),
			UtilizationPercent: entry.UtilizationPercent.String(),
			OverBudget:         entry.OverBudget,
		}
	}
	return resp
}

// GetPeriodStatus reports budget utilization for a period
// @Summary Get budget status
// @Description Planned versus actual spend per budgeted category for the period
// @Tags budgets
// @Produce json
// @Param id path string true "Group ID"
// @Param period path string true "Period key, e.g. 2026-09"
// @Success 200 {object} PeriodBudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/budgets/{period} [get]
func (h *BudgetHandler) GetPeriodStatus(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	summary, err := h.budgetService.GetPeriodStatus(groupID, c.Param("period"))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toPeriodBudgetResponse(summary))
}

// SetBudgets sets several category budgets for a period at once
// @Summary Set budgets
// @Description Upserts every listed category budget; validation failures roll back the whole batch
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param period path string true "Period key, e.g. 2026-09"
// @Param request body SetBudgetsRequest true "Budgets"
// @Success 200 {object} PeriodBudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/budgets/{period} [put]
func (h *BudgetHandler) SetBudgets(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	var req SetBudgetsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	inputs := make([]service.BudgetInput, len(req.Budgets))
	for i, item := range req.Budgets {
		amount, err := parseAmount(item.Amount)
		if err != nil {
			return NewValidationError(c, err.Error(), nil)
		}
		inputs[i] = service.BudgetInput{CategoryID: item.CategoryID, Amount: amount}
	}

	summary, err := h.budgetService.SetBudgets(groupID, c.Param("period"), inputs)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toPeriodBudgetResponse(summary))
}

// SetBudget sets one category budget for a period
// @Summary Set budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param period path string true "Period key, e.g. 2026-09"
// @Param categoryId path string true "Category ID"
// @Param request body SetBudgetRequest true "Budget"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/budgets/{period}/{categoryId} [put]
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	budget, err := h.budgetService.SetBudget(groupID, categoryID, c.Param("period"), amount)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, BudgetResponse{
		CategoryID: budget.CategoryID,
		PeriodKey:  budget.PeriodKey,
		Amount:     formatAmount(budget.Amount),
	})
}

// DeleteBudget removes one category budget for a period
// @Summary Delete budget
// @Tags budgets
// @Param id path string true "Group ID"
// @Param period path string true "Period key, e.g. 2026-09"
// @Param categoryId path string true "Category ID"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/budgets/{period}/{categoryId} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.budgetService.DeleteBudget(groupID, categoryID, c.Param("period")); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BudgetHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Budget not found")
	case errors.Is(err, domain.ErrInvalidPeriodKey):
		return NewValidationError(c, "Invalid period key, expected YYYY-MM", nil)
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Budget amount must not be negative", nil)
	default:
		log.Error().Err(err).Msg("Budget operation failed")
		return NewInternalError(c, "Budget operation failed")
	}
}
