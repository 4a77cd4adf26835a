package paymethods

import "strings"

// validPrefixes are the Venezuelan mobile operator prefixes.
var validPrefixes = []string{"412", "414", "424", "416", "426", "422"}

// normalize strips non-digits and the 58 country code / leading zero,
// leaving the bare 10-digit national number when the input is valid.
func normalize(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	num := digits.String()
	num = strings.TrimPrefix(num, "58")
	num = strings.TrimPrefix(num, "0")
	return num
}

// ValidPhone reports whether phone is a valid Venezuelan mobile number in
// any of the accepted spellings (0414…, +58414…, 414…).
func ValidPhone(phone string) bool {
	num := normalize(phone)
	if len(num) != 10 {
		return false
	}
	for _, prefix := range validPrefixes {
		if strings.HasPrefix(num, prefix) {
			return true
		}
	}
	return false
}

// FormatLocal renders a phone in the national form "0414-1234567".
// Invalid numbers come back unchanged.
func FormatLocal(phone string) string {
	num := normalize(phone)
	if len(num) != 10 {
		return phone
	}
	return "0" + num[:3] + "-" + num[3:]
}

// FormatInternational renders a phone in the "+58 414 1234567" form.
// Invalid numbers come back unchanged.
func FormatInternational(phone string) string {
	num := normalize(phone)
	if len(num) != 10 {
		return phone
	}
	return "+58 " + num[:3] + " " + num[3:]
}
