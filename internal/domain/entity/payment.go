package entity

import (
	"encoding/json"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment represents one entry in the append-only payment ledger of an
// invoice. Payments are never updated or deleted after creation.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PaymentNumber string             `gorm:"size:20;unique;not null" json:"payment_number"`
	InvoiceID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method        enum.PaymentMethod `gorm:"not null" json:"method"`
	Status        enum.PaymentStatus `gorm:"default:0" json:"status"`
	Reference     *string            `gorm:"size:255" json:"reference,omitempty"`
	CheckNumber   *string            `gorm:"size:100" json:"check_number,omitempty"`
	BankName      *string            `gorm:"size:255" json:"bank_name,omitempty"`
	CardLast4     *string            `gorm:"size:4" json:"card_last4,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	RecordedByID  uuid.UUID          `gorm:"type:uuid;not null" json:"recorded_by_id"`
	PaidAt        time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Invoice    Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	RecordedBy User    `gorm:"foreignKey:RecordedByID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
