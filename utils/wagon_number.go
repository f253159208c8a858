package utils

import "strings"

// wagonNumberGroups is the printed grouping of a 12 digit wagon number.
var wagonNumberGroups = [5]int{2, 2, 4, 3, 1}

const wagonNumberDigits = 12

// WagonNumberSegments splits a wagon number into the 2/2/4/3/1 digit groups
// printed on the manifest. Non-digits are dropped, short numbers are
// zero-padded on the left and long numbers keep their last 12 digits.
func WagonNumberSegments(number string) [5]string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > wagonNumberDigits {
		digits = digits[len(digits)-wagonNumberDigits:]
	}
	digits = strings.Repeat("0", wagonNumberDigits-len(digits)) + digits

	var out [5]string
	pos := 0
	for i, n := range wagonNumberGroups {
		out[i] = digits[pos : pos+n]
		pos += n
	}
	return out
}
