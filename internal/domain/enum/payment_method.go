package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod represents how a payment was made
type PaymentMethod int

const (
	PaymentMethodCash         PaymentMethod = 0
	PaymentMethodCheck        PaymentMethod = 1
	PaymentMethodCard         PaymentMethod = 2
	PaymentMethodCredit       PaymentMethod = 3
	PaymentMethodBankTransfer PaymentMethod = 4
)

var paymentMethodNames = [...]string{"Cash", "Check", "Card", "Credit", "BankTransfer"}

func (m PaymentMethod) String() string {
	if int(m) < 0 || int(m) >= len(paymentMethodNames) {
		return "Cash"
	}
	return paymentMethodNames[m]
}

// ParsePaymentMethod parses a method name, case-insensitively
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for i, name := range paymentMethodNames {
		if strings.EqualFold(name, s) {
			return PaymentMethod(i), nil
		}
	}
	return PaymentMethodCash, fmt.Errorf("unknown payment method %q", s)
}

// IsValid reports whether the value is a known payment method
func (m PaymentMethod) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentMethodNames)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	for i, name := range paymentMethodNames {
		if name == str {
			*m = PaymentMethod(i)
			return nil
		}
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
