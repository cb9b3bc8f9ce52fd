package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusConfirmed  OrderStatus = 1
	OrderStatusProcessing OrderStatus = 2
	OrderStatusShipped    OrderStatus = 3
	OrderStatusDelivered  OrderStatus = 4
	OrderStatusCancelled  OrderStatus = 5
)

var orderStatusNames = [...]string{"Pending", "Confirmed", "Processing", "Shipped", "Delivered", "Cancelled"}

func (s OrderStatus) String() string {
	if int(s) < 0 || int(s) >= len(orderStatusNames) {
		return "Pending"
	}
	return orderStatusNames[s]
}

// ParseOrderStatus parses a status name, case-insensitively
func ParseOrderStatus(s string) (OrderStatus, error) {
	for i, name := range orderStatusNames {
		if strings.EqualFold(name, s) {
			return OrderStatus(i), nil
		}
	}
	return OrderStatusPending, fmt.Errorf("unknown order status %q", s)
}

// IsValid reports whether the value is a known order status
func (s OrderStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(orderStatusNames)
}

// CanTransitionTo reports whether the status may advance to next.
// The fulfillment progression is forward-only; cancellation is allowed
// until the order ships and is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return next == s+1 || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		// Delivered and Cancelled are terminal
		return false
	}
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	for i, name := range orderStatusNames {
		if name == str {
			*s = OrderStatus(i)
			return nil
		}
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
