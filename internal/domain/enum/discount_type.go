package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a discount value is interpreted
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = DiscountType(str)
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypePercentage
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = DiscountType(v)
	case []byte:
		*t = DiscountType(string(v))
	}
	return nil
}

// DiscountReason is the fixed taxonomy a discount reason must be chosen
// from. ReasonOther requires accompanying free text.
type DiscountReason string

const (
	ReasonHappyHour     DiscountReason = "happy_hour"
	ReasonEmployee      DiscountReason = "employee"
	ReasonLoyalty       DiscountReason = "loyalty"
	ReasonCompensation  DiscountReason = "compensation"
	ReasonDamagedItem   DiscountReason = "damaged_item"
	ReasonManagersComp  DiscountReason = "managers_comp"
	ReasonOther         DiscountReason = "other"
)

func (r DiscountReason) IsValid() bool {
	switch r {
	case ReasonHappyHour, ReasonEmployee, ReasonLoyalty, ReasonCompensation,
		ReasonDamagedItem, ReasonManagersComp, ReasonOther:
		return true
	}
	return false
}
