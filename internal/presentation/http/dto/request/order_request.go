package request

// OrderItemRequest represents one line of an order request. UnitPrice
// is a decimal amount; when omitted the catalogue price is used.
type OrderItemRequest struct {
	ProductID string   `json:"product_id" binding:"required,uuid"`
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// CreateOrderRequest represents the checkout request body
type CreateOrderRequest struct {
	CustomerName       string             `json:"customer_name" binding:"required,max=255"`
	CustomerEmail      string             `json:"customer_email" binding:"required,email"`
	CustomerPhone      string             `json:"customer_phone" binding:"omitempty,max=50"`
	DeliveryAddress    string             `json:"delivery_address" binding:"required"`
	DeliveryCity       string             `json:"delivery_city" binding:"required,max=255"`
	DeliveryPostalCode string             `json:"delivery_postal_code" binding:"omitempty,max=20"`
	Notes              *string            `json:"notes"`
	TotalAmount        *float64           `json:"total_amount" binding:"omitempty,gte=0"`
	Items              []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AdminCreateOrderRequest represents the back-office order request body.
// The order is placed on behalf of an existing customer account.
type AdminCreateOrderRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	CreateOrderRequest
}

// UpdateOrderStatusRequest represents the status change request body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
