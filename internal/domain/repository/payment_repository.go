package repository

import (
	"context"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment ledger operations.
// The ledger is append-only: there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	CountByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (int64, error)
	SumCompletedByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (int64, error)
	SumCompletedSince(ctx context.Context, since time.Time) (int64, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Method     *enum.PaymentMethod
	InvoiceID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
