package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/pkg/apperror"
	"github.com/agrimarket/agrimarket-api/pkg/storage"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles catalogue product operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	store        storage.Storage
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	store storage.Storage,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		store:        store,
	}
}

// CreateProductInput represents the create product input. Price is in
// cents.
type CreateProductInput struct {
	CategoryID    uuid.UUID
	Name          string
	Description   string
	Price         int64
	StockQuantity int
	StockAlert    int
	IsActive      bool
}

// UpdateProductInput represents the editable product fields. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	CategoryID    *uuid.UUID
	Name          *string
	Description   *string
	Price         *int64
	StockQuantity *int
	StockAlert    *int
	IsActive      *bool
}

// CreateProduct adds a product to the catalogue
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price must not be negative")
	}
	if input.StockQuantity < 0 {
		return nil, apperror.NewBadRequestError("Stock quantity must not be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Disambiguate rather than reject; names collide legitimately
		// across equipment ranges.
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}

	product := &entity.Product{
		CategoryID:    &input.CategoryID,
		Name:          input.Name,
		Slug:          slug,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		StockAlert:    input.StockAlert,
		IsActive:      input.IsActive,
	}
	if input.Description != "" {
		product.Description = &input.Description
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductBySlug retrieves a product by its storefront slug
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns a filtered page of products
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// ListLowStockProducts returns active products at or below their alert
// threshold
func (s *ProductService) ListLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListLowStock(ctx)
}

// UpdateProduct edits a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil && *input.Name != product.Name {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, apperror.NewBadRequestError("Stock quantity must not be negative")
		}
		product.StockQuantity = *input.StockQuantity
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// UploadProductImage validates and stores a product image, replacing
// any previous one
func (s *ProductService) UploadProductImage(ctx context.Context, id uuid.UUID, fileHeader *multipart.FileHeader) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if _, err := storage.ValidateImage(fileHeader); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	key, err := s.store.Upload(ctx, fileHeader)
	if err != nil {
		return nil, err
	}

	oldKey := product.ImageKey
	product.ImageKey = &key
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if oldKey != nil {
		// Best effort; a dangling object is harmless.
		_ = s.store.Delete(ctx, *oldKey)
	}

	return product, nil
}

// GetProductImageURL resolves the product image to a servable URL
func (s *ProductService) GetProductImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", apperror.NewNotFoundError("Product")
	}
	if product.ImageKey == nil {
		return "", apperror.NewNotFoundError("Product image")
	}
	return s.store.URL(ctx, *product.ImageKey)
}

// DeleteProduct removes a product from the catalogue
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	if product.ImageKey != nil {
		_ = s.store.Delete(ctx, *product.ImageKey)
	}
	return s.productRepo.Delete(ctx, id)
}
