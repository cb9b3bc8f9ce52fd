package entity

import (
	"encoding/json"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice represents the billing document derived from an order.
// An order carries at most one invoice, enforced by the unique index
// on OrderID. AmountPaid is a cache of the completed-payment ledger
// and is only moved by guarded updates inside the payment transaction.
// Invoices are hard-deleted: a soft-deleted row would still occupy the
// unique order index and block re-invoicing the order.
type Invoice struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber  string             `gorm:"size:20;unique;not null" json:"invoice_number"`
	OrderID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Status         enum.InvoiceStatus `gorm:"default:0" json:"status"`
	TotalAmount    int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount      int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountPaid     int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	DueDate        *time.Time         `json:"due_date,omitempty"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`
	Notes          *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Order    Order     `gorm:"foreignKey:OrderID" json:"-"`
	Payments []Payment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		TotalAmount     float64 `json:"total_amount"`
		TaxAmount       float64 `json:"tax_amount"`
		DiscountAmount  float64 `json:"discount_amount"`
		AmountPaid      float64 `json:"amount_paid"`
		RemainingAmount float64 `json:"remaining_amount"`
	}{
		Alias:           Alias(i),
		TotalAmount:     float64(i.TotalAmount) / 100,
		TaxAmount:       float64(i.TaxAmount) / 100,
		DiscountAmount:  float64(i.DiscountAmount) / 100,
		AmountPaid:      float64(i.AmountPaid) / 100,
		RemainingAmount: float64(i.RemainingAmount()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// RemainingAmount returns the unpaid balance in cents. Never negative.
func (i *Invoice) RemainingAmount() int64 {
	remaining := i.TotalAmount - i.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsSettled reports whether the invoice is paid within tolerance
func (i *Invoice) IsSettled() bool {
	return i.TotalAmount-i.AmountPaid <= money.TotalToleranceCents
}
