package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the status of a payment. Admin-entered
// payments are recorded as completed; pending exists for payments
// initiated through external processors that have not yet cleared.
type PaymentStatus int

const (
	PaymentStatusCompleted PaymentStatus = 0
	PaymentStatusPending   PaymentStatus = 1
)

var paymentStatusNames = [...]string{"Completed", "Pending"}

func (s PaymentStatus) String() string {
	if int(s) < 0 || int(s) >= len(paymentStatusNames) {
		return "Completed"
	}
	return paymentStatusNames[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	for i, name := range paymentStatusNames {
		if name == str {
			*s = PaymentStatus(i)
			return nil
		}
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
