package messaging

import "strings"

// NormalizePhone keeps only the digits of phone, prefixes countryCode when
// exactly ten digits remain and they do not already start with it, and adds a
// leading "+". It returns "" when phone holds no digits.
func NormalizePhone(phone, countryCode string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if len(digits) == 10 && countryCode != "" && !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	return "+" + digits
}
