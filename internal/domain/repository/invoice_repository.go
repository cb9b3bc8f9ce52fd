package repository

import (
	"context"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations.
// ApplyPayment and UpdateAmounts are guarded updates: they only take
// effect when the collected amount still fits under the total at
// commit time, and report the outcome through their boolean result.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	// ApplyPayment atomically adds amount to amount_paid provided the
	// remaining balance still covers it. Returns false when the guard
	// rejects the update.
	ApplyPayment(ctx context.Context, id uuid.UUID, amount int64) (bool, error)

	// UpdateAmounts atomically rewrites total, tax and discount provided
	// amount_paid does not exceed the new total. Returns false when the
	// guard rejects the update.
	UpdateAmounts(ctx context.Context, id uuid.UUID, total, tax, discount int64) (bool, error)

	// MarkPaidIfSettled transitions the invoice to paid when the
	// remaining balance is within tolerance.
	MarkPaidIfSettled(ctx context.Context, id uuid.UUID) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	SumOutstanding(ctx context.Context) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
