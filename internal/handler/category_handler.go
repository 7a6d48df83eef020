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

// CategoryHandler handles expense category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the JSON request for creating or renaming a
// category
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents the JSON response for a category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"groupId"`
	Name      string    `json:"name"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		GroupID:   category.GroupID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateCategory creates a category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /groups/{id}/categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(groupID, req.Name)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// ListCategories lists a group's categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} CategoryResponse
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	categories, err := h.categoryService.ListCategories(groupID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateCategory renames a category
// @Summary Rename category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory deletes a category with no expenses
// @Summary Delete category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, "A category with that name already exists")
	case errors.Is(err, domain.ErrCategoryInUse):
		return NewConflictError(c, "Category is referenced by expenses")
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Name is required", nil)
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Name is too long", nil)
	default:
		log.Error().Err(err).Msg("Category operation failed")
		return NewInternalError(c, "Category operation failed")
	}
}
