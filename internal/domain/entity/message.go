package entity

import (
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a contact form submission from the storefront
type Message struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	Email     string             `gorm:"size:255;not null" json:"email"`
	Phone     *string            `gorm:"size:50" json:"phone,omitempty"`
	Subject   string             `gorm:"size:255;not null" json:"subject"`
	Body      string             `gorm:"type:text;not null" json:"body"`
	Status    enum.MessageStatus `gorm:"default:0" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new message
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
