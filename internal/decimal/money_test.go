package decimal_test

import (
	"errors"
	"math"
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-totals/internal/decimal"
	"github.com/rezonia/invoice-totals/internal/model"
)

func TestFromFloat(t *testing.T) {
	d, err := decimal.FromFloat("amount", 1234567.89)
	require.NoError(t, err)
	assert.Equal(t, "1234567.89", d.String())
}

func TestFromFloat_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := decimal.FromFloat("amount", v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidAmount))
	}
}

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestFromString_InvoiceNotation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"₹1,23,456.78", "123456.78"},
		{" 1,000 ", "1000"},
		{"₹ 99.50", "99.5"},
		{"-2,500", "-2500"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.FromString(tt.in)
			require.NoError(t, err)
			assert.True(t, d.Equal(dec.RequireFromString(tt.want)), "got %s", d)
		})
	}

	_, err := decimal.FromString("₹")
	assert.Error(t, err)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		percent  string
		expected string
	}{
		{"18% of 1500", "1500", "18", "270"},
		{"0% of 1500", "1500", "0", "0"},
		{"18% of 0.05 keeps precision", "0.05", "18", "0.009"},
		{"12.5% of 333.33", "333.33", "12.5", "41.66625"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decimal.Percentage(dec.RequireFromString(tt.amount), dec.RequireFromString(tt.percent))
			assert.True(t, result.Equal(dec.RequireFromString(tt.expected)),
				"got %s, want %s", result.String(), tt.expected)
		})
	}
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.NewFromInt(100),
		dec.RequireFromString("200.25"),
		dec.RequireFromString("-50.25"),
	}
	result := decimal.Sum(values)
	assert.True(t, result.Equal(dec.NewFromInt(250)))
}

func TestSum_Empty(t *testing.T) {
	result := decimal.Sum([]dec.Decimal{})
	assert.True(t, result.IsZero())
}

func TestRoundPaise(t *testing.T) {
	assert.Equal(t, "10.01", decimal.RoundPaise(dec.RequireFromString("10.005")).String())
	assert.Equal(t, "10", decimal.RoundPaise(dec.RequireFromString("10.004")).String())
}

func TestRoundRupee(t *testing.T) {
	assert.Equal(t, "5001", decimal.RoundRupee(dec.RequireFromString("5000.50")).String())
	assert.Equal(t, "5000", decimal.RoundRupee(dec.RequireFromString("5000.49")).String())
}

func TestSplitRupeesPaise(t *testing.T) {
	tests := []struct {
		in     string
		rupees int64
		paise  int64
	}{
		{"0", 0, 0},
		{"1770.00", 1770, 0},
		{"1234567.89", 1234567, 89},
		{"0.5", 0, 50},
		{"1.999", 2, 0}, // carry into rupees
		{"12.345", 12, 35},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, p := decimal.SplitRupeesPaise(dec.RequireFromString(tt.in))
			assert.Equal(t, tt.rupees, r)
			assert.Equal(t, tt.paise, p)
		})
	}
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, decimal.IsNonNegative(dec.NewFromInt(1)))
	assert.True(t, decimal.IsNonNegative(dec.Zero))
	assert.False(t, decimal.IsNonNegative(dec.NewFromInt(-1)))
}
