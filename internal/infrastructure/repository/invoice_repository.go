package repository

import (
	"context"
	"errors"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).First(&invoice, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Preload("Order").
		Preload("Order.Items").
		Preload("Order.Items.Product").
		Preload("Payments").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := conn(ctx, r.db).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("LOWER(invoice_number) LIKE LOWER(?)", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "invoice_number", "total_amount", "status", "due_date", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Order").
		Preload("Payments").
		Order(sortBy + " " + sortOrder).
		Find(&invoices).Error

	return invoices, total, err
}

// ApplyPayment admits a payment into the ledger cache only while the
// remaining balance still covers it. A concurrent payment that lands
// first shrinks the balance and makes this update match zero rows.
func (r *invoiceRepository) ApplyPayment(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ? AND total_amount - amount_paid >= ?", id, amount).
		Update("amount_paid", gorm.Expr("amount_paid + ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateAmounts rewrites the invoice totals only while the amount
// already collected still fits under the new total.
func (r *invoiceRepository) UpdateAmounts(ctx context.Context, id uuid.UUID, total, tax, discount int64) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ? AND amount_paid <= ?", id, total).
		Updates(map[string]interface{}{
			"total_amount":    total,
			"tax_amount":      tax,
			"discount_amount": discount,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *invoiceRepository) MarkPaidIfSettled(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ? AND status <> ? AND total_amount - amount_paid <= ?",
			id, enum.InvoiceStatusPaid, money.TotalToleranceCents).
		Updates(map[string]interface{}{
			"status":  enum.InvoiceStatusPaid,
			"paid_at": &now,
		}).Error
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	return conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) SumOutstanding(ctx context.Context) (int64, error) {
	var sum *int64
	err := conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("status NOT IN ?", []enum.InvoiceStatus{enum.InvoiceStatusPaid, enum.InvoiceStatusCancelled}).
		Select("SUM(total_amount - amount_paid)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
