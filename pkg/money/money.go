package money

import (
	"encoding/json"
	"fmt"
	"math"
)

// Cents represents a monetary amount in integer cents. All engine
// arithmetic happens on this type; decimals exist only at the API
// boundary.
type Cents int64

// FromFloat converts a decimal amount to cents, rounding half up.
func FromFloat(amount float64) Cents {
	if amount >= 0 {
		return Cents(math.Floor(amount*100 + 0.5))
	}
	return Cents(math.Ceil(amount*100 - 0.5))
}

// Float returns the amount as a decimal value.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// PercentOf returns pct percent of c, rounded half up.
// pct is expressed as a percentage (25 means 25%), not a fraction.
func PercentOf(c Cents, pct float64) Cents {
	return FromFloat(c.Float() * pct / 100)
}

// TaxOn returns rate * c rounded half up, where rate is a fraction
// (0.08 means 8% tax).
func TaxOn(c Cents, rate float64) Cents {
	return FromFloat(c.Float() * rate)
}

// Min returns the smaller of two amounts.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

// String formats the amount as a plain decimal, e.g. "18.00".
func (c Cents) String() string {
	neg := ""
	v := c
	if v < 0 {
		neg = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", neg, v/100, v%100)
}

// MarshalJSON renders the amount as a decimal number for API responses.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Float())
}

// UnmarshalJSON accepts a decimal number and stores it as cents.
func (c *Cents) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = FromFloat(f)
	return nil
}
