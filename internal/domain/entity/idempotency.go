package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores a cached response for a previously processed
// request so retries replay the original outcome instead of running
// the operation twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key          string    `gorm:"size:255;unique;not null" json:"key"`
	RequestHash  string    `gorm:"size:64;not null" json:"request_hash"`
	ResponseCode int       `gorm:"not null" json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (k *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the cached response is past its TTL
func (k *IdempotencyKey) IsExpired() bool {
	return time.Now().After(k.ExpiresAt)
}
