package parsefields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "thousands and decimals", in: "1.016,18", want: 1016.18},
		{name: "integer", in: "544", want: 544},
		{name: "decimal comma", in: "3,50", want: 3.5},
		{name: "padded", in: "  12,00 ", want: 12},
		{name: "empty", in: "", want: 0},
		{name: "not a number", in: "abc", want: 0},
		{name: "only separators", in: ".,", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseNumber(tt.in), 1e-9)
		})
	}
}

func TestParseDecimalKeepsFailureDistinct(t *testing.T) {
	_, err := ParseDecimal("")
	assert.ErrorIs(t, err, ErrUnparsableNumber)

	_, err = ParseDecimal("n/d")
	assert.ErrorIs(t, err, ErrUnparsableNumber)

	d, err := ParseDecimal("0")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = ParseDecimal("1.234.567,89")
	require.NoError(t, err)
	assert.Equal(t, "1234567.89", d.String())
}

func TestLimitDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "4500", want: "4500"},
		{name: "exactly ten", in: "4500123456", want: "4500123456"},
		{name: "too many digits", in: "1234567890123", want: "1234567890"},
		{name: "separators kept", in: "12/34-56 7890 12", want: "12/34-56 7890"},
		{name: "trailing space trimmed", in: "45 ", want: "45"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LimitDigits(tt.in))
		})
	}
}
