package entity

import (
	"encoding/json"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a customer order. The customer contact and delivery
// fields are a snapshot taken at checkout, so later profile edits do
// not rewrite order history.
type Order struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber        string           `gorm:"size:20;unique;not null" json:"order_number"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status             enum.OrderStatus `gorm:"default:0" json:"status"`
	TotalAmount        int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	CustomerName       string           `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail      string           `gorm:"size:255;not null" json:"customer_email"`
	CustomerPhone      string           `gorm:"size:50" json:"customer_phone"`
	DeliveryAddress    string           `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryCity       string           `gorm:"size:255;not null" json:"delivery_city"`
	DeliveryPostalCode string           `gorm:"size:20" json:"delivery_postal_code"`
	Notes              *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User    User        `gorm:"foreignKey:UserID" json:"-"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Invoice *Invoice    `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(o),
		TotalAmount: float64(o.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.TotalAmount) / 100
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Total:     float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
