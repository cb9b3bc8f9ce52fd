package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/pkg/apperror"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/google/uuid"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	sequenceRepo repository.SequenceRepository
	txManager    repository.TransactionManager
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	sequenceRepo repository.SequenceRepository,
	txManager repository.TransactionManager,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
	}
}

// CreateInvoiceInput represents the create invoice input. Tax and
// discount are in cents.
type CreateInvoiceInput struct {
	OrderID        uuid.UUID
	TaxAmount      int64
	DiscountAmount int64
	DueDate        *time.Time
	Notes          *string
}

// UpdateInvoiceInput represents the editable invoice fields. Nil fields
// are left unchanged.
type UpdateInvoiceInput struct {
	TaxAmount      *int64
	DiscountAmount *int64
	DueDate        *time.Time
	Notes          *string
	Status         *enum.InvoiceStatus
}

// CreateInvoice derives an invoice from an order. The invoice total is
// the order total plus tax minus discount and must not be negative. An
// order carries at most one invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.TaxAmount < 0 || input.DiscountAmount < 0 {
		return nil, apperror.NewBadRequestError("Tax and discount must not be negative")
	}

	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot invoice a cancelled order")
	}

	existing, err := s.invoiceRepo.GetByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Order already has an invoice")
	}

	total := order.TotalAmount + input.TaxAmount - input.DiscountAmount
	if total < 0 {
		return nil, apperror.NewBadRequestError("Invoice total must not be negative")
	}

	var created *entity.Invoice

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		seq, err := s.sequenceRepo.Next(ctx, entity.SequenceInvoice)
		if err != nil {
			return err
		}

		invoice := &entity.Invoice{
			InvoiceNumber:  utils.FormatSequenceNumber("FAC", seq),
			OrderID:        input.OrderID,
			Status:         enum.InvoiceStatusPending,
			TotalAmount:    total,
			TaxAmount:      input.TaxAmount,
			DiscountAmount: input.DiscountAmount,
			DueDate:        input.DueDate,
			Notes:          input.Notes,
		}
		// The unique index on order_id closes the race between two
		// concurrent derivations for the same order.
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, created.ID)
}

// GetInvoice retrieves an invoice with its order and payment ledger.
// The amount_paid cache is reconciled against the ledger on read.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if err := s.reconcile(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// reconcile re-derives amount_paid from the completed payments and
// repairs the cache when it drifted.
func (s *InvoiceService) reconcile(ctx context.Context, invoice *entity.Invoice) error {
	ledger, err := s.paymentRepo.SumCompletedByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return err
	}
	if ledger == invoice.AmountPaid {
		return nil
	}

	invoice.AmountPaid = ledger
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return err
	}
	if invoice.IsSettled() && invoice.Status != enum.InvoiceStatusPaid {
		if err := s.invoiceRepo.MarkPaidIfSettled(ctx, invoice.ID); err != nil {
			return err
		}
		invoice.Status = enum.InvoiceStatusPaid
	}
	return nil
}

// ListInvoices returns a filtered page of invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, params)
}

// UpdateInvoice edits the invoice. Changing tax or discount re-derives
// the total; the edit is rejected when the amount already collected
// would exceed the new total.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if input.TaxAmount != nil || input.DiscountAmount != nil {
			tax := invoice.TaxAmount
			discount := invoice.DiscountAmount
			if input.TaxAmount != nil {
				tax = *input.TaxAmount
			}
			if input.DiscountAmount != nil {
				discount = *input.DiscountAmount
			}
			if tax < 0 || discount < 0 {
				return apperror.NewBadRequestError("Tax and discount must not be negative")
			}

			order, err := s.orderRepo.GetByID(ctx, invoice.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return apperror.NewNotFoundError("Order")
			}

			total := order.TotalAmount + tax - discount
			if total < 0 {
				return apperror.NewBadRequestError("Invoice total must not be negative")
			}

			// Guarded rewrite: rejected when payments already exceed
			// the new total, including payments landing concurrently.
			ok, err := s.invoiceRepo.UpdateAmounts(ctx, id, total, tax, discount)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewConflictError(fmt.Sprintf(
					"New total %.2f is below the amount already paid %.2f",
					float64(total)/100, float64(invoice.AmountPaid)/100))
			}
		}

		updated, err := s.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.DueDate != nil {
			updated.DueDate = input.DueDate
		}
		if input.Notes != nil {
			updated.Notes = input.Notes
		}
		if input.Status != nil {
			if !input.Status.IsValid() {
				return apperror.NewBadRequestError("Invalid invoice status")
			}
			updated.Status = *input.Status
		}
		if err := s.invoiceRepo.Update(ctx, updated); err != nil {
			return err
		}

		// A lowered total can settle the invoice outright
		return s.invoiceRepo.MarkPaidIfSettled(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, id)
}

// DeleteInvoice removes an invoice that has no payments recorded
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	count, err := s.paymentRepo.CountByInvoiceID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"Cannot delete invoice with %d recorded payment(s)", count))
	}

	return s.invoiceRepo.Delete(ctx, id)
}
