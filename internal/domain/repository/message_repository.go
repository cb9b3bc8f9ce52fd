package repository

import (
	"context"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/google/uuid"
)

// MessageRepository defines the interface for contact message operations
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MessageFilterParams) ([]entity.Message, int64, error)
	CountByStatus(ctx context.Context, status enum.MessageStatus) (int64, error)
}

// MessageFilterParams contains filtering parameters for message queries
type MessageFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.MessageStatus
	SortBy     string
	SortOrder  string
}
