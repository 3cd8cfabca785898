package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"500", 500, true},
		{"  42", 42, true},
		{"100abc", 100, true},
		{"12.75", 12, true},
		{"-5", -5, true},
		{"+7", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"$100", 0, false},
		{"99999999999999999999", math.MaxInt64, true},
		{"-99999999999999999999 rupees", math.MinInt64, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLeadingInt(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
