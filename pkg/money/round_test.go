package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfDown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tie rounds down", "10.005", "10.00"},
		{"above tie rounds up", "10.0051", "10.01"},
		{"below tie rounds down", "10.0049", "10.00"},
		{"six rounds up", "10.006", "10.01"},
		{"already two places", "7.5", "7.50"},
		{"integer", "3", "3.00"},
		{"negative tie toward zero", "-2.345", "-2.34"},
		{"negative above tie away from zero", "-2.3451", "-2.35"},
		{"carry into units", "0.995001", "1.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundHalfDown(decimal.RequireFromString(tc.in), Cents)
			assert.Equal(t, tc.want, got.StringFixed(Cents))
		})
	}
}

func TestAverage(t *testing.T) {
	t.Run("15 over 2 -> 7.50", func(t *testing.T) {
		got := Average(decimal.RequireFromString("15.00"), 2, Cents)
		assert.True(t, got.Equal(decimal.RequireFromString("7.50")), "got %s", got)
	})

	t.Run("non-terminating quotient", func(t *testing.T) {
		got := Average(decimal.NewFromInt(10), 3, Cents)
		assert.Equal(t, "3.33", got.StringFixed(Cents))

		got = Average(decimal.NewFromInt(20), 3, Cents)
		assert.Equal(t, "6.67", got.StringFixed(Cents))
	})

	t.Run("exact tie after division rounds down", func(t *testing.T) {
		// 20.01 / 2 = 10.005
		got := Average(decimal.RequireFromString("20.01"), 2, Cents)
		assert.Equal(t, "10.00", got.StringFixed(Cents))
	})

	t.Run("just past tie after division rounds up", func(t *testing.T) {
		// 30.016 / 3 = 10.00533...
		got := Average(decimal.RequireFromString("30.016"), 3, Cents)
		assert.Equal(t, "10.01", got.StringFixed(Cents))
	})

	t.Run("non-positive count panics", func(t *testing.T) {
		assert.Panics(t, func() { Average(decimal.NewFromInt(1), 0, Cents) })
	})
}
