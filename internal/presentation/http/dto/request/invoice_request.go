package request

import "time"

// CreateInvoiceRequest represents the create invoice request body. Tax
// and discount are decimal amounts.
type CreateInvoiceRequest struct {
	OrderID        string     `json:"order_id" binding:"required,uuid"`
	TaxAmount      float64    `json:"tax_amount" binding:"gte=0"`
	DiscountAmount float64    `json:"discount_amount" binding:"gte=0"`
	DueDate        *time.Time `json:"due_date"`
	Notes          *string    `json:"notes"`
}

// UpdateInvoiceRequest represents the update invoice request body
type UpdateInvoiceRequest struct {
	TaxAmount      *float64   `json:"tax_amount" binding:"omitempty,gte=0"`
	DiscountAmount *float64   `json:"discount_amount" binding:"omitempty,gte=0"`
	DueDate        *time.Time `json:"due_date"`
	Notes          *string    `json:"notes"`
	Status         *string    `json:"status"`
}
