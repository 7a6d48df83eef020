package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/service"
)

// GroupHandler handles group HTTP requests
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// GroupRequest represents the JSON request for creating or updating a group
type GroupRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	// ChargePerPeriod is the recurring charge as a decimal string, e.g.
	// "100.00". Omit or null to clear.
	ChargePerPeriod *string `json:"chargePerPeriod"`
}

// GroupResponse represents the JSON response for a group
type GroupResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Currency        string    `json:"currency"`
	ChargePerPeriod *string   `json:"chargePerPeriod,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

func toGroupResponse(group *domain.Group) GroupResponse {
	resp := GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Currency:  group.Currency,
		CreatedAt: group.CreatedAt.Format(time.RFC3339),
		UpdatedAt: group.UpdatedAt.Format(time.RFC3339),
	}
	if group.ChargePerPeriod != nil {
		charge := formatAmount(*group.ChargePerPeriod)
		resp.ChargePerPeriod = &charge
	}
	return resp
}

func (r *GroupRequest) chargePerPeriod() (*int64, error) {
	if r.ChargePerPeriod == nil {
		return nil, nil
	}
	charge, err := parseAmount(*r.ChargePerPeriod)
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// CreateGroup creates a new group
// @Summary Create group
// @Description Creates a shared-cost group with an optional recurring charge per period
// @Tags groups
// @Accept json
// @Produce json
// @Param request body GroupRequest true "Group"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} ProblemDetails
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	charge, err := req.chargePerPeriod()
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	group, err := h.groupService.CreateGroup(req.Name, req.Currency, charge)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toGroupResponse(group))
}

// GetGroup retrieves a group
// @Summary Get group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} GroupResponse
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	group, err := h.groupService.GetGroup(id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toGroupResponse(group))
}

// UpdateGroup updates a group's name, currency and recurring charge
// @Summary Update group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body GroupRequest true "Group"
// @Success 200 {object} GroupResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id} [put]
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	charge, err := req.chargePerPeriod()
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	group, err := h.groupService.UpdateGroup(id, req.Name, req.Currency, charge)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toGroupResponse(group))
}

// DeleteGroup deletes a group and everything in it
// @Summary Delete group
// @Tags groups
// @Param id path string true "Group ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	if err := h.groupService.DeleteGroup(id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *GroupHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Name is required", nil)
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Name is too long", nil)
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Recurring charge must not be negative", nil)
	default:
		log.Error().Err(err).Msg("Group operation failed")
		return NewInternalError(c, "Group operation failed")
	}
}
