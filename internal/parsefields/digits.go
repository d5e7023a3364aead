package parsefields

import (
	"strings"
	"unicode"
)

// MaxPODigits caps the digits kept from a purchase-order reference.
const MaxPODigits = 10

// LimitDigits keeps characters of s from the left until MaxPODigits digits
// have been taken. Separators between digits survive; anything after the
// last allowed digit is dropped.
func LimitDigits(s string) string {
	var b strings.Builder
	count := 0
	for _, r := range s {
		if count >= MaxPODigits {
			break
		}
		if unicode.IsDigit(r) {
			count++
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
