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

// PaymentService handles payment settlement. Payments are admitted
// against the invoice balance inside one transaction; the ledger is
// append-only afterwards.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	invoiceRepo  repository.InvoiceRepository
	sequenceRepo repository.SequenceRepository
	txManager    repository.TransactionManager
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	sequenceRepo repository.SequenceRepository,
	txManager repository.TransactionManager,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
	}
}

// RecordPaymentInput represents the record payment input. Amount is in
// cents.
type RecordPaymentInput struct {
	InvoiceID    uuid.UUID
	Amount       int64
	Method       enum.PaymentMethod
	Reference    *string
	CheckNumber  *string
	BankName     *string
	CardLast4    *string
	Notes        *string
	RecordedByID uuid.UUID
	PaidAt       *time.Time
}

// RecordPayment admits a payment against the invoice balance. The
// admission is a guarded update, so two concurrent payments can never
// drive the collected amount past the invoice total; the loser is
// rejected with the remaining balance at that instant.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot record a payment on a cancelled invoice")
	}

	var created *entity.Payment

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.invoiceRepo.ApplyPayment(ctx, input.InvoiceID, input.Amount)
		if err != nil {
			return err
		}
		if !ok {
			// Re-read for the rejection message; the balance may have
			// moved since the first read.
			current, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
			if err != nil {
				return err
			}
			remaining := int64(0)
			if current != nil {
				remaining = current.RemainingAmount()
			}
			return apperror.NewBadRequestError(fmt.Sprintf(
				"Payment exceeds remaining balance of %.2f", float64(remaining)/100))
		}

		seq, err := s.sequenceRepo.Next(ctx, entity.SequencePayment)
		if err != nil {
			return err
		}

		paidAt := time.Now()
		if input.PaidAt != nil {
			paidAt = *input.PaidAt
		}

		payment := &entity.Payment{
			PaymentNumber: utils.FormatSequenceNumber("PAY", seq),
			InvoiceID:     input.InvoiceID,
			Amount:        input.Amount,
			Method:        input.Method,
			Status:        enum.PaymentStatusCompleted,
			Reference:     input.Reference,
			CheckNumber:   input.CheckNumber,
			BankName:      input.BankName,
			CardLast4:     input.CardLast4,
			Notes:         input.Notes,
			RecordedByID:  input.RecordedByID,
			PaidAt:        paidAt,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		if err := s.invoiceRepo.MarkPaidIfSettled(ctx, input.InvoiceID); err != nil {
			return err
		}

		created = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.paymentRepo.GetByID(ctx, created.ID)
}

// GetPayment retrieves a payment with its invoice
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments returns a filtered page of payments
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return s.paymentRepo.List(ctx, params)
}

// ListInvoicePayments returns the full ledger of one invoice in
// chronological order
func (s *PaymentService) ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoiceID(ctx, invoiceID)
}
