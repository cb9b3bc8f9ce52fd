package request

// CreateProductRequest represents the create product request body.
// Price is a decimal amount.
type CreateProductRequest struct {
	CategoryID    string  `json:"category_id" binding:"required,uuid"`
	Name          string  `json:"name" binding:"required,max=255"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gte=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	StockAlert    int     `json:"stock_alert" binding:"gte=0"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateProductRequest represents the update product request body
type UpdateProductRequest struct {
	CategoryID    *string  `json:"category_id" binding:"omitempty,uuid"`
	Name          *string  `json:"name" binding:"omitempty,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	StockAlert    *int     `json:"stock_alert" binding:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents the update category request body
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"omitempty,max=255"`
	Description string `json:"description"`
}
