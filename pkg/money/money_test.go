package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromDecimal(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{19.99, 1999},
		{1000.00, 100000},
		{0.01, 1},
		{0.005, 1}, // rounds half away from zero
		{1140.00, 114000},
		{-50.50, -5050},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromDecimal(tt.amount), "FromDecimal(%v)", tt.amount)
	}
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, 19.99, ToDecimal(1999))
	assert.Equal(t, 0.0, ToDecimal(0))
	assert.Equal(t, -11.4, ToDecimal(-1140))
}

func TestRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 114000, 999999999} {
		assert.Equal(t, cents, FromDecimal(ToDecimal(cents)))
	}
}
