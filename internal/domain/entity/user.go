package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles carried on the user row and in the JWT role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or back-office account
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName  string         `gorm:"size:255;not null" json:"first_name"`
	LastName   string         `gorm:"size:255;not null" json:"last_name"`
	Email      string         `gorm:"size:255;unique;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	Role       string         `gorm:"size:50;not null;default:'user'" json:"role"`
	Provider   string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID *string        `gorm:"size:255" json:"-"`
	Photo      *string        `gorm:"size:255" json:"photo,omitempty"`
	Phone      *string        `gorm:"size:50" json:"phone,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	City       *string        `gorm:"size:255" json:"city,omitempty"`
	PostalCode *string        `gorm:"size:20" json:"postal_code,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
