package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CashTransactionType represents an entry in a shift's transaction log
type CashTransactionType string

const (
	TxnSale    CashTransactionType = "sale"
	TxnReturn  CashTransactionType = "return"
	TxnCashIn  CashTransactionType = "cashIn"
	TxnCashOut CashTransactionType = "cashOut"
	TxnNoSale  CashTransactionType = "noSale"
)

func (t CashTransactionType) String() string {
	return string(t)
}

func (t CashTransactionType) IsValid() bool {
	switch t {
	case TxnSale, TxnReturn, TxnCashIn, TxnCashOut, TxnNoSale:
		return true
	}
	return false
}

func (t CashTransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CashTransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = CashTransactionType(str)
	return nil
}

func (t CashTransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CashTransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TxnSale
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CashTransactionType(v)
	case []byte:
		*t = CashTransactionType(string(v))
	}
	return nil
}
