package handler

import (
	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/request"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/response"
	"github.com/agrimarket/agrimarket-api/pkg/money"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles catalogue product HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns a page of products
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param category_id query string false "Category filter"
// @Success 200 {object} response.APIResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		// The storefront only sees active products; the back office
		// lists everything.
		ActiveOnly: !IsAdmin(c),
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		params.CategoryID = &id
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// Get returns one product by ID or slug
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID or slug"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	idOrSlug := c.Param("id")

	var product *entity.Product
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		product, err = h.productService.GetProduct(c.Request.Context(), id)
	} else {
		product, err = h.productService.GetProductBySlug(c.Request.Context(), idOrSlug)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", gin.H{"product": product})
}

// Create adds a product to the catalogue
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateProductRequest true "Product data"
// @Success 201 {object} response.APIResponse
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		CategoryID:    categoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         money.FromDecimal(req.Price),
		StockQuantity: req.StockQuantity,
		StockAlert:    req.StockAlert,
		IsActive:      isActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", gin.H{"product": product})
}

// Update edits a product
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body request.UpdateProductRequest true "Product fields"
// @Success 200 {object} response.APIResponse
// @Router /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		StockAlert:    req.StockAlert,
		IsActive:      req.IsActive,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Price != nil {
		price := money.FromDecimal(*req.Price)
		input.Price = &price
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", gin.H{"product": product})
}

// UploadImage stores a product image
// @Summary Upload product image
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} response.APIResponse
// @Router /admin/products/{id}/image [post]
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}

	product, err := h.productService.UploadProductImage(c.Request.Context(), id, fileHeader)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Image uploaded", gin.H{"product": product})
}

// GetImageURL resolves the product image URL
// @Summary Get product image URL
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /products/{id}/image [get]
func (h *ProductHandler) GetImageURL(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	url, err := h.productService.GetProductImageURL(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Image URL resolved", gin.H{"url": url})
}

// LowStock returns products at or below their alert threshold
// @Summary Low stock products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /admin/products/low-stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.ListLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved", gin.H{"products": products})
}

// Delete removes a product
// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
