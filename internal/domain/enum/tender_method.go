package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TenderMethod represents a payment instrument
type TenderMethod string

const (
	TenderCash     TenderMethod = "cash"
	TenderCard     TenderMethod = "card"
	TenderCheque   TenderMethod = "cheque"
	TenderGiftCard TenderMethod = "giftcard"
)

func (m TenderMethod) String() string {
	return string(m)
}

func (m TenderMethod) IsValid() bool {
	switch m {
	case TenderCash, TenderCard, TenderCheque, TenderGiftCard:
		return true
	}
	return false
}

func (m TenderMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *TenderMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = TenderMethod(str)
	return nil
}

func (m TenderMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *TenderMethod) Scan(value interface{}) error {
	if value == nil {
		*m = TenderCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = TenderMethod(v)
	case []byte:
		*m = TenderMethod(string(v))
	}
	return nil
}
