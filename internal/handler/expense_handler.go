package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
	"github.com/tallyhq/tally-backend/internal/service"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the JSON request for recording an expense
type ExpenseRequest struct {
	Description string     `json:"description"`
	Amount      string     `json:"amount"`
	PayerID     uuid.UUID  `json:"payerId"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	PeriodKey   *string    `json:"periodKey"`
	// OccurredAt is a date, "2026-09-15". Defaults to today.
	OccurredAt string `json:"occurredAt"`
	// SplitType selects the policy: equal (default), weighted, percentage
	// or manual.
	SplitType string `json:"splitType"`
	// ParticipantIDs restricts the split to a subset of the group.
	ParticipantIDs []uuid.UUID `json:"participantIds"`
	// ManualAmounts maps participant ID to decimal amount for manual splits.
	ManualAmounts map[string]string `json:"manualAmounts"`
}

// ShareResponse represents one participant's share of an expense
type ShareResponse struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Amount        string    `json:"amount"`
}

// ExpenseResponse represents the JSON response for an expense
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"groupId"`
	Description string          `json:"description"`
	Amount      string          `json:"amount"`
	PayerID     uuid.UUID       `json:"payerId"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	PeriodKey   *string         `json:"periodKey,omitempty"`
	OccurredAt  string          `json:"occurredAt"`
	Shares      []ShareResponse `json:"shares"`
	CreatedAt   string          `json:"createdAt"`
}

// PaginatedExpensesResponse represents a page of expenses
type PaginatedExpensesResponse struct {
	Data       []ExpenseResponse `json:"data"`
	Page       int32             `json:"page"`
	PageSize   int32             `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int32             `json:"totalPages"`
}

const dateLayout = "2006-01-02"

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		Description: expense.Description,
		Amount:      formatAmount(expense.Amount),
		PayerID:     expense.PayerID,
		CategoryID:  expense.CategoryID,
		PeriodKey:   expense.PeriodKey,
		OccurredAt:  expense.OccurredAt.Format(dateLayout),
		Shares:      make([]ShareResponse, len(expense.Shares)),
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
	}
	for i, share := range expense.Shares {
		resp.Shares[i] = ShareResponse{
			ParticipantID: share.ParticipantID,
			Amount:        formatAmount(share.Amount),
		}
	}
	return resp
}

func (r *ExpenseRequest) toInput() (service.CreateExpenseInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return service.CreateExpenseInput{}, err
	}

	input := service.CreateExpenseInput{
		Description:    r.Description,
		Amount:         amount,
		PayerID:        r.PayerID,
		CategoryID:     r.CategoryID,
		PeriodKey:      r.PeriodKey,
		SplitType:      service.SplitType(r.SplitType),
		ParticipantIDs: r.ParticipantIDs,
	}

	if r.OccurredAt != "" {
		occurredAt, err := time.Parse(dateLayout, r.OccurredAt)
		if err != nil {
			return service.CreateExpenseInput{}, fmt.Errorf("invalid occurredAt date %q", r.OccurredAt)
		}
		input.OccurredAt = occurredAt
	}

	if len(r.ManualAmounts) > 0 {
		input.ManualAmounts = make(map[uuid.UUID]int64, len(r.ManualAmounts))
		for key, value := range r.ManualAmounts {
			id, err := uuid.Parse(key)
			if err != nil {
				return service.CreateExpenseInput{}, fmt.Errorf("invalid participant ID %q in manual amounts", key)
			}
			amount, err := parseAmount(value)
			if err != nil {
				return service.CreateExpenseInput{}, err
			}
			input.ManualAmounts[id] = amount
		}
	}

	return input, nil
}

// CreateExpense records an expense and splits it across participants
// @Summary Create expense
// @Description Records an expense; shares are allocated under the selected split policy and always sum exactly to the amount
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := req.toInput()
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	expense, err := h.expenseService.CreateExpense(groupID, input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// ListExpenses lists a group's expenses with filters and pagination
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param id path string true "Group ID"
// @Param category query string false "Category ID"
// @Param periodKey query string false "Period key, e.g. 2026-09"
// @Param from query string false "Start date (inclusive), YYYY-MM-DD"
// @Param to query string false "End date (inclusive), YYYY-MM-DD"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} PaginatedExpensesResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	filters, err := parseExpenseFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	page, err := h.expenseService.ListExpenses(groupID, filters)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	resp := PaginatedExpensesResponse{
		Data:       make([]ExpenseResponse, len(page.Data)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
	for i, expense := range page.Data {
		resp.Data[i] = toExpenseResponse(expense)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetExpense retrieves an expense with its shares
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} ExpenseResponse
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.GetExpense(id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense deletes an expense and its shares
// @Summary Delete expense
// @Description Expenses are immutable; corrections are delete plus recreate
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseExpenseFilters(c echo.Context) (*domain.ExpenseFilters, error) {
	filters := &domain.ExpenseFilters{Page: 1, PageSize: domain.DefaultPageSize}

	if raw := c.QueryParam("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid category filter %q", raw)
		}
		filters.CategoryID = &id
	}
	if raw := c.QueryParam("periodKey"); raw != "" {
		filters.PeriodKey = &raw
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %q", raw)
		}
		filters.StartDate = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q", raw)
		}
		filters.EndDate = &to
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page %q", raw)
		}
		filters.Page = int32(page)
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("invalid pageSize %q", raw)
		}
		if size > domain.MaxPageSize {
			size = domain.MaxPageSize
		}
		filters.PageSize = int32(size)
	}

	return filters, nil
}

func (h *ExpenseHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrExpenseNotFound):
		return NewNotFoundError(c, "Expense not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrParticipantNotFound):
		return NewNotFoundError(c, "Participant not found")
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Amount must not be negative", nil)
	case errors.Is(err, ledger.ErrShareMismatch):
		return NewValidationError(c, "Manual shares must cover every participant and sum exactly to the amount", nil)
	case errors.Is(err, ledger.ErrUnknownParticipant):
		return NewValidationError(c, "Manual shares reference a participant outside the split", nil)
	case errors.Is(err, ledger.ErrInvalidSplit):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	default:
		log.Error().Err(err).Msg("Expense operation failed")
		return NewInternalError(c, "Expense operation failed")
	}
}
