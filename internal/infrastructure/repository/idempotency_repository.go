package repository

import (
	"context"
	"errors"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	return conn(ctx, r.db).Create(key).Error
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	err := conn(ctx, r.db).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return conn(ctx, r.db).
		Delete(&entity.IdempotencyKey{}, "expires_at < ?", time.Now()).Error
}
