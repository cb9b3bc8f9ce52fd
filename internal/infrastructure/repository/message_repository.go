package repository

import (
	"context"
	"errors"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) domainRepo.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return conn(ctx, r.db).Create(message).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	var message entity.Message
	err := conn(ctx, r.db).First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &message, err
}

func (r *messageRepository) Update(ctx context.Context, message *entity.Message) error {
	return conn(ctx, r.db).Save(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Message{}, "id = ?", id).Error
}

func (r *messageRepository) List(ctx context.Context, params *domainRepo.MessageFilterParams) ([]entity.Message, int64, error) {
	var messages []entity.Message
	var total int64

	query := conn(ctx, r.db).Model(&entity.Message{})

	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(subject) LIKE LOWER(?)",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at " + sortOrder).
		Find(&messages).Error

	return messages, total, err
}

func (r *messageRepository) CountByStatus(ctx context.Context, status enum.MessageStatus) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Message{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
