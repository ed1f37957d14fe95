package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType represents the service context of an order
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeout  OrderType = "takeout"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeBarTab   OrderType = "bar-tab"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeDelivery, OrderTypeBarTab:
		return true
	}
	return false
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = OrderType(str)
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeDineIn
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = OrderType(v)
	case []byte:
		*t = OrderType(string(v))
	}
	return nil
}
