package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePrecision(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		maxScale int
		want     bool
	}{
		{"integer under scale 1", "15", 1, true},
		{"one fractional digit under scale 1", "15.5", 1, true},
		{"two fractional digits over scale 1", "15.55", 1, false},
		{"two fractional digits under scale 2", "2.25", 2, true},
		{"three fractional digits over scale 2", "2.255", 2, false},
		{"zero", "0", 2, true},
		{"leading plus", "+3.5", 1, true},
		{"negative rejected", "-1.0", 1, false},
		{"negative zero rejected", "-0", 2, false},
		{"empty rejected", "", 2, false},
		{"whitespace only rejected", "   ", 2, false},
		{"not a number rejected", "abc", 2, false},
		{"mixed garbage rejected", "12a.5", 1, false},
		{"double dot rejected", "1.2.3", 2, false},
		{"trailing dot rejected", "12.", 2, false},
		{"bare dot rejected", ".", 2, false},
		{"leading dot accepted", ".5", 1, true},
		{"negative max scale rejected", "1", -1, false},
		{"scale zero integer", "42", 0, true},
		{"scale zero fraction rejected", "42.0", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePrecision(tt.literal, tt.maxScale))
		})
	}
}

// A trailing zero is still a digit position: "2.50" must fail scale 1 even
// though its normalized value is 2.5. The check runs on the literal, not on
// a parsed float.
func TestValidatePrecisionTrailingZeros(t *testing.T) {
	assert.False(t, ValidatePrecision("2.50", 1))
	assert.True(t, ValidatePrecision("2.50", 2))
	assert.False(t, ValidatePrecision("10.00", 1))
	assert.True(t, ValidatePrecision("10.0", 1))
}
