package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AuditKind represents the kind of audited cart mutation
type AuditKind string

const (
	AuditVoid          AuditKind = "void"
	AuditPriceOverride AuditKind = "price_override"
	AuditItemDiscount  AuditKind = "item_discount"
	AuditOrderDiscount AuditKind = "order_discount"
)

func (k AuditKind) String() string {
	return string(k)
}

func (k AuditKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *AuditKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = AuditKind(str)
	return nil
}

func (k AuditKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *AuditKind) Scan(value interface{}) error {
	if value == nil {
		*k = AuditVoid
		return nil
	}
	switch v := value.(type) {
	case string:
		*k = AuditKind(v)
	case []byte:
		*k = AuditKind(string(v))
	}
	return nil
}
