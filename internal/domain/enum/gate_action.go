package enum

import "encoding/json"

// GateAction represents a sensitive cart operation that must pass the
// permission gate before it is applied
type GateAction string

const (
	ActionVoidItems     GateAction = "void_items"
	ActionPriceOverride GateAction = "price_override"
	ActionApplyDiscount GateAction = "apply_discount"
)

func (a GateAction) String() string {
	return string(a)
}

func (a GateAction) IsValid() bool {
	switch a {
	case ActionVoidItems, ActionPriceOverride, ActionApplyDiscount:
		return true
	}
	return false
}

func (a GateAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a *GateAction) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*a = GateAction(str)
	return nil
}
