package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// MessageStatus represents the handling state of a contact message
type MessageStatus int

const (
	MessageStatusNew     MessageStatus = 0
	MessageStatusRead    MessageStatus = 1
	MessageStatusReplied MessageStatus = 2
)

var messageStatusNames = [...]string{"New", "Read", "Replied"}

func (s MessageStatus) String() string {
	if int(s) < 0 || int(s) >= len(messageStatusNames) {
		return "New"
	}
	return messageStatusNames[s]
}

// ParseMessageStatus parses a status name, case-insensitively
func ParseMessageStatus(s string) (MessageStatus, error) {
	for i, name := range messageStatusNames {
		if strings.EqualFold(name, s) {
			return MessageStatus(i), nil
		}
	}
	return MessageStatusNew, fmt.Errorf("unknown message status %q", s)
}

// IsValid reports whether the value is a known message status
func (s MessageStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(messageStatusNames)
}

func (s MessageStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MessageStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = MessageStatus(i)
		return nil
	}
	for i, name := range messageStatusNames {
		if name == str {
			*s = MessageStatus(i)
			return nil
		}
	}
	return nil
}

func (s MessageStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *MessageStatus) Scan(value interface{}) error {
	if value == nil {
		*s = MessageStatusNew
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = MessageStatus(v)
	case int:
		*s = MessageStatus(v)
	}
	return nil
}
