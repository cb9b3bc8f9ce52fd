package service

import (
	"context"
	"strings"
	"testing"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settledInvoice creates an invoice totalling 1140.00 (1000.00 order
// plus 190.00 tax minus 50.00 discount).
func settledInvoice(t *testing.T, env *testEnv) *entity.Invoice {
	t.Helper()
	order := invoicedOrder(t, env)
	invoice, err := env.invoiceService.CreateInvoice(context.Background(), &CreateInvoiceInput{
		OrderID:        order.ID,
		TaxAmount:      19000,
		DiscountAmount: 5000,
	})
	require.NoError(t, err)
	return invoice
}

func TestRecordPaymentSettlesInvoice(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	invoice := settledInvoice(t, env)

	first, err := env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       50000,
		Method:       enum.PaymentMethodBankTransfer,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.PaymentNumber, "PAY-"))
	assert.Equal(t, enum.PaymentStatusCompleted, first.Status)

	partial, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), partial.AmountPaid)
	assert.Equal(t, int64(64000), partial.RemainingAmount())
	assert.Equal(t, enum.InvoiceStatusPending, partial.Status)

	_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       64000,
		Method:       enum.PaymentMethodCheck,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)

	settled, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(114000), settled.AmountPaid)
	assert.Equal(t, int64(0), settled.RemainingAmount())
	assert.Equal(t, enum.InvoiceStatusPaid, settled.Status)
}

func TestRecordPaymentWithinTolerance(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	invoice := settledInvoice(t, env)

	// One cent short still settles
	_, err := env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       113999,
		Method:       enum.PaymentMethodCash,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)

	settled, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, settled.Status)
}

func TestRecordPaymentOverpaymentRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	invoice := settledInvoice(t, env)

	_, err := env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       100000,
		Method:       enum.PaymentMethodCard,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)

	// 140.00 remains; 150.00 must not be admitted
	_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       15000,
		Method:       enum.PaymentMethodCard,
		RecordedByID: admin.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Payment exceeds remaining balance of 140.00")

	// The rejected payment left no ledger entry
	ledger, err := env.paymentService.ListInvoicePayments(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, ledger, 1)

	current, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), current.AmountPaid)
}

func TestRecordPaymentValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	invoice := settledInvoice(t, env)

	tests := []struct {
		name    string
		input   *RecordPaymentInput
		wantErr string
	}{
		{
			name: "zero amount",
			input: &RecordPaymentInput{
				InvoiceID:    invoice.ID,
				Amount:       0,
				Method:       enum.PaymentMethodCash,
				RecordedByID: admin.ID,
			},
			wantErr: "must be positive",
		},
		{
			name: "negative amount",
			input: &RecordPaymentInput{
				InvoiceID:    invoice.ID,
				Amount:       -100,
				Method:       enum.PaymentMethodCash,
				RecordedByID: admin.ID,
			},
			wantErr: "must be positive",
		},
		{
			name: "unknown method",
			input: &RecordPaymentInput{
				InvoiceID:    invoice.ID,
				Amount:       1000,
				Method:       enum.PaymentMethod(42),
				RecordedByID: admin.ID,
			},
			wantErr: "Invalid payment method",
		},
		{
			name: "unknown invoice",
			input: &RecordPaymentInput{
				InvoiceID:    uuid.New(),
				Amount:       1000,
				Method:       enum.PaymentMethodCash,
				RecordedByID: admin.ID,
			},
			wantErr: "Invoice not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.paymentService.RecordPayment(ctx, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecordPaymentOnCancelledInvoice(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	invoice := settledInvoice(t, env)

	cancelled := enum.InvoiceStatusCancelled
	_, err := env.invoiceService.UpdateInvoice(ctx, invoice.ID, &UpdateInvoiceInput{Status: &cancelled})
	require.NoError(t, err)

	_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       1000,
		Method:       enum.PaymentMethodCash,
		RecordedByID: admin.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled invoice")
}

func TestListInvoicePaymentsChronological(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	invoice := settledInvoice(t, env)

	for _, amount := range []int64{10000, 20000, 30000} {
		_, err := env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
			InvoiceID:    invoice.ID,
			Amount:       amount,
			Method:       enum.PaymentMethodCash,
			RecordedByID: admin.ID,
		})
		require.NoError(t, err)
	}

	ledger, err := env.paymentService.ListInvoicePayments(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	assert.Equal(t, int64(10000), ledger[0].Amount)
	assert.Equal(t, int64(30000), ledger[2].Amount)
	assert.Equal(t, "PAY-000001", ledger[0].PaymentNumber)
	assert.Equal(t, "PAY-000003", ledger[2].PaymentNumber)
}
