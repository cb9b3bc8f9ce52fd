package repository

import (
	"context"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	CountByStatus(ctx context.Context, status enum.OrderStatus) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.OrderStatus
	UserID         *uuid.UUID
	WithoutInvoice bool // Only orders that have no invoice yet
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}

// OrderItemRepository defines the interface for order line item data operations
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
