package utils

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ParseLeadingInt reads an optionally signed base-10 integer from the start of s,
// ignoring leading whitespace and anything after the digits. Values beyond int64 clamp to
// math.MaxInt64 or math.MinInt64. ok is false when no digits are found.
func ParseLeadingInt(s string) (n int64, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	// On overflow ParseInt already returns the clamped bound.
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
