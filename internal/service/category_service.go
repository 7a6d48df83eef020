package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// CategoryService handles expense category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	groupRepo    domain.GroupRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, groupRepo domain.GroupRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		groupRepo:    groupRepo,
	}
}

// CreateCategory creates a category; names are unique within a group
func (s *CategoryService) CreateCategory(groupID uuid.UUID, name string) (*domain.Category, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByName(groupID, name); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	return s.categoryRepo.Create(&domain.Category{
		GroupID: groupID,
		Name:    name,
	})
}

// ListCategories retrieves a group's categories
func (s *CategoryService) ListCategories(groupID uuid.UUID) ([]*domain.Category, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByGroup(groupID)
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(id uuid.UUID, name string) (*domain.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.categoryRepo.GetByName(category.GroupID, name); err == nil {
		if existing.ID != id {
			return nil, domain.ErrAlreadyExists
		}
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category.Name = name
	return s.categoryRepo.Update(category)
}

// DeleteCategory removes a category unless expenses still reference it
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	inUse, err := s.categoryRepo.HasExpenses(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}

// CanDeleteCategory reports whether the category is safe to delete
func (s *CategoryService) CanDeleteCategory(id uuid.UUID) (bool, error) {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return false, err
	}
	inUse, err := s.categoryRepo.HasExpenses(id)
	if err != nil {
		return false, err
	}
	return !inUse, nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return domain.ErrNameTooLong
	}
	return nil
}
