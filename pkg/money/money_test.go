package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   Cents
	}{
		{"whole dollars", 10.00, 1000},
		{"exact cents", 18.99, 1899},
		{"half rounds up", 0.005, 1},
		{"just below half rounds down", 0.004, 0},
		{"binary float artifact", 19.99, 1999},
		{"negative half rounds away from zero", -0.005, -1},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromFloat(tt.amount))
		})
	}
}

func TestPercentOf(t *testing.T) {
	// 10% of $20.00 is $2.00
	assert.Equal(t, Cents(200), PercentOf(2000, 10))
	// 25% of $10.00 is $2.50
	assert.Equal(t, Cents(250), PercentOf(1000, 25))
	// odd split rounds half up: 33.33% of $1.00 -> $0.33
	assert.Equal(t, Cents(33), PercentOf(100, 33.33))
	assert.Equal(t, Cents(0), PercentOf(0, 50))
}

func TestTaxOn(t *testing.T) {
	// $15.00 at 8% -> $1.20
	assert.Equal(t, Cents(120), TaxOn(1500, 0.08))
	// $10.00 at 8.25% -> $0.83 (82.5 rounds up)
	assert.Equal(t, Cents(83), TaxOn(1000, 0.0825))
}

func TestString(t *testing.T) {
	assert.Equal(t, "18.00", Cents(1800).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-3.80", Cents(-380).String())
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Cents(1620))
	require.NoError(t, err)
	assert.Equal(t, "16.2", string(data))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte("16.20"), &c))
	assert.Equal(t, Cents(1620), c)
}
