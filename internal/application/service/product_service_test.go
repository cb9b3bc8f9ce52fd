package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category, err := env.categoryService.CreateCategory(ctx, "Tractors", "Compact and utility tractors")
	require.NoError(t, err)
	require.NotNil(t, category.Description)
	assert.Equal(t, "Compact and utility tractors", *category.Description)
	assert.Equal(t, "tractors", category.Slug)

	product, err := env.productService.CreateProduct(ctx, &CreateProductInput{
		CategoryID:    category.ID,
		Name:          "Compact Tractor 25HP",
		Description:   "25 horsepower, turf tyres",
		Price:         1250000,
		StockQuantity: 4,
		StockAlert:    1,
		IsActive:      true,
	})
	require.NoError(t, err)

	require.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)
	require.NotNil(t, product.Description)
	assert.Equal(t, "25 horsepower, turf tyres", *product.Description)
	assert.Equal(t, "compact-tractor-25hp", product.Slug)
	assert.True(t, product.IsActive)
}

func TestCreateProductInactiveStaysInactive(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category, err := env.categoryService.CreateCategory(ctx, "Balers", "")
	require.NoError(t, err)
	assert.Nil(t, category.Description)

	product, err := env.productService.CreateProduct(ctx, &CreateProductInput{
		CategoryID: category.ID,
		Name:       "Retired Combine",
		Price:      4000000,
		IsActive:   false,
	})
	require.NoError(t, err)
	assert.False(t, product.IsActive)

	// The flag survived the round trip to the database
	stored, err := env.productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestUpdateProduct(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tractors, err := env.categoryService.CreateCategory(ctx, "Tractors", "")
	require.NoError(t, err)
	harvest, err := env.categoryService.CreateCategory(ctx, "Harvest", "")
	require.NoError(t, err)

	product, err := env.productService.CreateProduct(ctx, &CreateProductInput{
		CategoryID:    tractors.ID,
		Name:          "Round Baler",
		Price:         900000,
		StockQuantity: 2,
		IsActive:      true,
	})
	require.NoError(t, err)

	description := "540 RPM PTO, net wrap"
	price := int64(950000)
	inactive := false
	updated, err := env.productService.UpdateProduct(ctx, product.ID, &UpdateProductInput{
		CategoryID:  &harvest.ID,
		Description: &description,
		Price:       &price,
		IsActive:    &inactive,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, harvest.ID, *updated.CategoryID)
	require.NotNil(t, updated.Description)
	assert.Equal(t, description, *updated.Description)
	assert.Equal(t, price, updated.Price)
	assert.False(t, updated.IsActive)
}

func TestCreateProductRejections(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category, err := env.categoryService.CreateCategory(ctx, "Tillage", "")
	require.NoError(t, err)

	t.Run("negative price", func(t *testing.T) {
		_, err := env.productService.CreateProduct(ctx, &CreateProductInput{
			CategoryID: category.ID,
			Name:       "Disc Harrow",
			Price:      -1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price must not be negative")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := env.productService.CreateProduct(ctx, &CreateProductInput{
			Name:  "Disc Harrow",
			Price: 150000,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category not found")
	})
}

func TestDeleteCategoryWithProductsRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category, err := env.categoryService.CreateCategory(ctx, "Seeding", "")
	require.NoError(t, err)

	_, err = env.productService.CreateProduct(ctx, &CreateProductInput{
		CategoryID: category.ID,
		Name:       "Precision Seeder",
		Price:      80000,
		IsActive:   true,
	})
	require.NoError(t, err)

	err = env.categoryService.DeleteCategory(ctx, category.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot delete category with 1 product(s)")
}
