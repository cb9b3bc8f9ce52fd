package request

import "time"

// RecordPaymentRequest represents the record payment request body.
// Amount is a decimal amount.
type RecordPaymentRequest struct {
	InvoiceID   string     `json:"invoice_id" binding:"required,uuid"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Method      string     `json:"method" binding:"required"`
	Reference   *string    `json:"reference" binding:"omitempty,max=255"`
	CheckNumber *string    `json:"check_number" binding:"omitempty,max=100"`
	BankName    *string    `json:"bank_name" binding:"omitempty,max=255"`
	CardLast4   *string    `json:"card_last4" binding:"omitempty,len=4"`
	Notes       *string    `json:"notes"`
	PaidAt      *time.Time `json:"paid_at"`
}
