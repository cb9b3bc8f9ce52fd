package repository

import (
	"context"
	"errors"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).
		Preload("Invoice").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := conn(ctx, r.db).Model(&entity.Payment{})

	if params.Search != "" {
		query = query.Where("LOWER(payment_number) LIKE LOWER(?) OR LOWER(reference) LIKE LOWER(?)",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Method != nil {
		query = query.Where("method = ?", *params.Method)
	}

	if params.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *params.InvoiceID)
	}

	if params.StartDate != nil {
		query = query.Where("paid_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("paid_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "paid_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "payment_number", "amount", "paid_at", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Invoice").
		Order(sortBy + " " + sortOrder).
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) CountByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Count(&total).Error
	return total, err
}

func (r *paymentRepository) SumCompletedByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var sum *int64
	err := conn(ctx, r.db).Model(&entity.Payment{}).
		Where("invoice_id = ? AND status = ?", invoiceID, enum.PaymentStatusCompleted).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *paymentRepository) SumCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var sum *int64
	err := conn(ctx, r.db).Model(&entity.Payment{}).
		Where("status = ? AND paid_at >= ?", enum.PaymentStatusCompleted, since).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
