package words_test

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-totals/internal/model"
	"github.com/rezonia/invoice-totals/internal/words"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Only"},
		{"0.00", "Zero Only"},
		{"1", "One Only"},
		{"7", "Seven Only"},
		{"13", "Thirteen Only"},
		{"20", "Twenty Only"},
		{"45", "Forty Five Only"},
		{"100", "One Hundred Only"},
		{"101", "One Hundred One Only"},
		{"999", "Nine Hundred Ninety Nine Only"},
		{"1000", "One Thousand Only"},
		{"1770.00", "One Thousand Seven Hundred Seventy Only"},
		{"20005", "Twenty Thousand Five Only"},
		{"99999", "Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		{"100000", "One Lakh Only"},
		{"250000", "Two Lakh Fifty Thousand Only"},
		{"9999999", "Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		{"10000000", "One Crore Only"},
		{"123456789", "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Only"},
		{"1000000000000", "One Lakh Crore Only"},
		{"1234567.89", "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven and Eighty Nine paise Only"},
		{"0.5", "Zero and Fifty paise Only"},
		{"10.05", "Ten and Five paise Only"},
		{"1.999", "Two Only"},
		{"99.995", "One Hundred Only"},
		{"12.345", "Twelve and Thirty Five paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := words.ToWords(decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWords_AlwaysEndsWithOnly(t *testing.T) {
	for cents := int64(0); cents < 200000; cents += 137 {
		amount := decimal.New(cents, -2)
		got, err := words.ToWords(amount)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(got, "Only"), "amount %s: %q", amount, got)

		hasPaise := cents%100 != 0
		assert.Equal(t, hasPaise, strings.Contains(got, " and "), "amount %s: %q", amount, got)
	}
}

func TestToWords_Negative(t *testing.T) {
	_, err := words.ToWords(decimal.RequireFromString("-0.01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidAmount))
}

func TestToWords_OutOfRange(t *testing.T) {
	_, err := words.ToWords(words.MaxAmount)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidAmount))

	_, err = words.ToWords(words.MaxAmount.Sub(decimal.NewFromInt(1)))
	require.NoError(t, err)
}

func TestFloatToWords(t *testing.T) {
	c := words.NewConverter()

	got, err := c.FloatToWords(1234567.89)
	require.NoError(t, err)
	assert.Equal(t, "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven and Eighty Nine paise Only", got)

	for _, v := range []float64{math.NaN(), math.Inf(1), -5} {
		_, err := c.FloatToWords(v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidAmount))
	}
}

func TestConverter_Labels(t *testing.T) {
	c := words.NewConverter(words.WithRupeeLabel("Rupees"), words.WithPaiseLabel("Paise"))

	got, err := c.ToWords(decimal.RequireFromString("1500.50"))
	require.NoError(t, err)
	assert.Equal(t, "One Thousand Five Hundred Rupees and Fifty Paise Only", got)

	got, err = c.ToWords(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "Zero Rupees Only", got)
}

func TestToWords_Idempotent(t *testing.T) {
	amount := decimal.RequireFromString("87654321.09")
	first, err := words.ToWords(amount)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := words.ToWords(amount)
			assert.NoError(t, err)
			assert.Equal(t, first, got)
		}()
	}
	wg.Wait()
}

func TestSpell(t *testing.T) {
	assert.Equal(t, "", words.Spell(0))
	assert.Equal(t, "Eighty Nine", words.Spell(89))
	assert.Equal(t, "One Thousand Crore", words.Spell(10000000000))
}

func BenchmarkToWords(b *testing.B) {
	amount := decimal.RequireFromString("1234567.89")
	for i := 0; i < b.N; i++ {
		_, _ = words.ToWords(amount)
	}
}
