package domain

// ValidPhone reports whether s is exactly 10 numeric digits.
func ValidPhone(s string) bool {
	return allDigits(s, 10)
}

// ValidOTP reports whether s is exactly 6 numeric digits.
func ValidOTP(s string) bool {
	return allDigits(s, 6)
}

// ValidAadhaar reports whether s is exactly 12 numeric digits.
func ValidAadhaar(s string) bool {
	return allDigits(s, 12)
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
