package service

import (
	"context"
	"fmt"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/pkg/apperror"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/google/uuid"
)

// CategoryService handles catalogue category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory adds a category
func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		Name: name,
		Slug: slug,
	}
	if description != "" {
		category.Description = &description
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories returns all categories ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategory edits a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if name != "" && name != category.Name {
		category.Name = name
		category.Slug = utils.Slugify(name)
	}
	if description != "" {
		category.Description = &description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category that has no products
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"Cannot delete category with %d product(s)", count))
	}

	return s.categoryRepo.Delete(ctx, id)
}
