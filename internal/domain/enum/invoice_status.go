package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending   InvoiceStatus = 0
	InvoiceStatusSent      InvoiceStatus = 1
	InvoiceStatusPaid      InvoiceStatus = 2
	InvoiceStatusOverdue   InvoiceStatus = 3
	InvoiceStatusCancelled InvoiceStatus = 4
)

var invoiceStatusNames = [...]string{"Pending", "Sent", "Paid", "Overdue", "Cancelled"}

func (s InvoiceStatus) String() string {
	if int(s) < 0 || int(s) >= len(invoiceStatusNames) {
		return "Pending"
	}
	return invoiceStatusNames[s]
}

// ParseInvoiceStatus parses a status name, case-insensitively
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	for i, name := range invoiceStatusNames {
		if strings.EqualFold(name, s) {
			return InvoiceStatus(i), nil
		}
	}
	return InvoiceStatusPending, fmt.Errorf("unknown invoice status %q", s)
}

// IsValid reports whether the value is a known invoice status
func (s InvoiceStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(invoiceStatusNames)
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	for i, name := range invoiceStatusNames {
		if name == str {
			*s = InvoiceStatus(i)
			return nil
		}
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
