package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invoicedOrder creates a user, a product and an order totalling
// 1000.00 so the settlement tests share one known starting point.
func invoicedOrder(t *testing.T, env *testEnv) *entity.Order {
	t.Helper()
	user := env.createUser(t, "buyer-"+t.Name()+"@example.com", entity.RoleUser)
	product := env.createProduct(t, "Compact Tractor", 100000, 100)
	return env.createOrder(t, user, []OrderItemInput{{ProductID: product.ID, Quantity: 1}})
}

func TestCreateInvoice(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	order := invoicedOrder(t, env)

	due := time.Now().Add(30 * 24 * time.Hour)
	invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{
		OrderID:        order.ID,
		TaxAmount:      19000,
		DiscountAmount: 5000,
		DueDate:        &due,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "FAC-"))
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	// 1000.00 + 190.00 tax - 50.00 discount
	assert.Equal(t, int64(114000), invoice.TotalAmount)
	assert.Equal(t, int64(0), invoice.AmountPaid)
	assert.Equal(t, int64(114000), invoice.RemainingAmount())
}

func TestCreateInvoiceRejections(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	t.Run("negative tax", func(t *testing.T) {
		order := invoicedOrder(t, env)
		_, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{
			OrderID:   order.ID,
			TaxAmount: -100,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be negative")
	})

	t.Run("discount exceeding the total", func(t *testing.T) {
		order := invoicedOrder(t, env)
		_, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{
			OrderID:        order.ID,
			DiscountAmount: order.TotalAmount + 1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invoice total must not be negative")
	})

	t.Run("cancelled order", func(t *testing.T) {
		order := invoicedOrder(t, env)
		_, err := env.orderService.CancelOrder(ctx, order.ID)
		require.NoError(t, err)

		_, err = env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled order")
	})

	t.Run("second invoice for the same order", func(t *testing.T) {
		order := invoicedOrder(t, env)
		_, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
		require.NoError(t, err)

		_, err = env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has an invoice")
	})
}

func TestUpdateInvoiceRederivesTotal(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	order := invoicedOrder(t, env)

	invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{
		OrderID:   order.ID,
		TaxAmount: 19000,
	})
	require.NoError(t, err)

	discount := int64(10000)
	updated, err := env.invoiceService.UpdateInvoice(ctx, invoice.ID, &UpdateInvoiceInput{
		DiscountAmount: &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(109000), updated.TotalAmount)
	assert.Equal(t, int64(19000), updated.TaxAmount)
}

func TestUpdateInvoiceBelowAmountPaidRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	order := invoicedOrder(t, env)

	invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
	require.NoError(t, err)

	_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       60000,
		Method:       enum.PaymentMethodBankTransfer,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)

	// A discount that would drop the total to 500.00 is below the
	// 600.00 already collected.
	discount := int64(50000)
	_, err = env.invoiceService.UpdateInvoice(ctx, invoice.ID, &UpdateInvoiceInput{
		DiscountAmount: &discount,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the amount already paid")

	// The invoice kept its previous amounts
	current, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), current.TotalAmount)
	assert.Equal(t, int64(0), current.DiscountAmount)
}

func TestUpdateInvoiceLoweredTotalSettles(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	order := invoicedOrder(t, env)

	invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
	require.NoError(t, err)

	_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       90000,
		Method:       enum.PaymentMethodCash,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)

	// Dropping the total to exactly the collected amount settles it
	discount := int64(10000)
	updated, err := env.invoiceService.UpdateInvoice(ctx, invoice.ID, &UpdateInvoiceInput{
		DiscountAmount: &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(90000), updated.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusPaid, updated.Status)
}

func TestDeleteInvoice(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)

	t.Run("invoice without payments is deleted", func(t *testing.T) {
		order := invoicedOrder(t, env)
		invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
		require.NoError(t, err)

		require.NoError(t, env.invoiceService.DeleteInvoice(ctx, invoice.ID))

		gone, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("order can be invoiced again after deletion", func(t *testing.T) {
		order := invoicedOrder(t, env)
		invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
		require.NoError(t, err)

		require.NoError(t, env.invoiceService.DeleteInvoice(ctx, invoice.ID))

		reissued, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{
			OrderID:   order.ID,
			TaxAmount: 19000,
		})
		require.NoError(t, err)
		assert.Equal(t, order.ID, reissued.OrderID)
		assert.NotEqual(t, invoice.InvoiceNumber, reissued.InvoiceNumber)
	})

	t.Run("invoice with payments is kept", func(t *testing.T) {
		order := invoicedOrder(t, env)
		invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
		require.NoError(t, err)

		for _, amount := range []int64{20000, 30000} {
			_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
				InvoiceID:    invoice.ID,
				Amount:       amount,
				Method:       enum.PaymentMethodCheck,
				RecordedByID: admin.ID,
			})
			require.NoError(t, err)
		}

		err = env.invoiceService.DeleteInvoice(ctx, invoice.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot delete invoice with 2 recorded payment(s)")
	})
}

func TestGetInvoiceReconcilesDriftedCache(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "admin@example.com", entity.RoleAdmin)
	order := invoicedOrder(t, env)

	invoice, err := env.invoiceService.CreateInvoice(ctx, &CreateInvoiceInput{OrderID: order.ID})
	require.NoError(t, err)

	_, err = env.paymentService.RecordPayment(ctx, &RecordPaymentInput{
		InvoiceID:    invoice.ID,
		Amount:       100000,
		Method:       enum.PaymentMethodCard,
		RecordedByID: admin.ID,
	})
	require.NoError(t, err)

	// Corrupt the cache directly; the read path must repair it from
	// the ledger and restore the settled status.
	require.NoError(t, env.db.Model(&entity.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{"amount_paid": 0, "status": enum.InvoiceStatusPending}).Error)

	repaired, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), repaired.AmountPaid)
	assert.Equal(t, enum.InvoiceStatusPaid, repaired.Status)
}
