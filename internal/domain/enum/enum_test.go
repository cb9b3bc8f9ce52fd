package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		// No skipping ahead
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		// No going back
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		// Shipped orders can no longer be cancelled
		{OrderStatusShipped, OrderStatusCancelled, false},
		// Terminal states
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		// No self transition
		{OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusConfirmed, status)

	status, err = ParseOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("teleported")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("banktransfer")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodBankTransfer, method)

	_, err = ParsePaymentMethod("barter")
	assert.Error(t, err)
}

func TestOrderStatusJSON(t *testing.T) {
	data, err := json.Marshal(OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, `"Processing"`, string(data))

	var status OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"Delivered"`), &status))
	assert.Equal(t, OrderStatusDelivered, status)

	// Integer form is accepted too
	require.NoError(t, json.Unmarshal([]byte(`1`), &status))
	assert.Equal(t, OrderStatusConfirmed, status)
}

func TestInvoiceStatusValidity(t *testing.T) {
	assert.True(t, InvoiceStatusPaid.IsValid())
	assert.False(t, InvoiceStatus(99).IsValid())
	assert.Equal(t, "Paid", InvoiceStatusPaid.String())
}
