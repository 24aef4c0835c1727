package payment

import "strings"

const (
	maxCardDigits   = 16
	maxCVVDigits    = 4
	maxExpiryDigits = 4
	maxMobileDigits = 12 // 63 + ten-digit subscriber number
)

// Digits keeps only ASCII digits of s, at most max of them (max <= 0 means
// no limit).
func Digits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if max > 0 && b.Len() >= max {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatCardNumber groups digits by four: "4111111111111111" becomes
// "4111 1111 1111 1111".
func FormatCardNumber(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaskCardNumber hides everything but the last four digits.
func MaskCardNumber(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("•", len(digits)-4) + digits[len(digits)-4:]
}

// FormatExpiry inserts "/" once two digits are typed: "1229" becomes
// "12/29", "1" stays "1".
func FormatExpiry(input string) string {
	v := Digits(input, maxExpiryDigits)
	if len(v) >= 2 {
		return v[:2] + "/" + v[2:]
	}
	return v
}

// FormatMobile normalizes a Philippine mobile number as it is typed into
// "+63 XXX XXX XXXX". A leading trunk 0 is dropped before 63 is prefixed.
// Input without subscriber digits formats to "".
func FormatMobile(input string) string {
	v := Digits(input, 0)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "63") {
		v = "63" + strings.TrimPrefix(v, "0")
	}
	if len(v) > maxMobileDigits {
		v = v[:maxMobileDigits]
	}
	if len(v) <= 2 {
		return ""
	}

	var b strings.Builder
	b.WriteString("+63 ")
	b.WriteString(v[2:min(5, len(v))])
	if len(v) > 5 {
		b.WriteByte(' ')
		b.WriteString(v[5:min(8, len(v))])
	}
	if len(v) > 8 {
		b.WriteByte(' ')
		b.WriteString(v[8:])
	}
	return b.String()
}
