package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSONUsesTwoDecimals(t *testing.T) {
	raw, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: MustMoney("25.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"25.50"}`, string(raw))
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var fromString, fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`"10.005"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`0.1`), &fromNumber))

	assert.Equal(t, "10.01", fromString.String())
	assert.Equal(t, "0.10", fromNumber.String())
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	total := NewMoneyFromDecimal(decimal.Zero)
	for i := 0; i < 10; i++ {
		total = total.Add(MustMoney("0.10"))
	}
	assert.Equal(t, "1.00", total.String())

	assert.Equal(t, "20.00", MustMoney("10.00").Mul(2).String())
	assert.Equal(t, "25.50", MustMoney("10.00").Mul(2).Add(MustMoney("5.50").Mul(1)).String())
}

func TestMoneyDisplay(t *testing.T) {
	cases := map[string]string{
		"1299.99": "$1,299.99",
		"10":      "$10.00",
		"5.5":     "$5.50",
		"1234567": "$1,234,567.00",
		"0.99":    "$0.99",
	}
	for input, want := range cases {
		assert.Equal(t, want, MustMoney(input).Display(), "input %s", input)
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan(float64(5.5)))
	assert.Equal(t, "5.50", m.String())
	require.NoError(t, m.Scan("12.345"))
	assert.Equal(t, "12.35", m.String())
	assert.InDelta(t, 12.35, m.Float64(), 0.0001)
}
