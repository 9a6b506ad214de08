package validation

// IsValidISBN reports whether s is a well-formed ISBN: exactly 13 digits.
func IsValidISBN(s string) bool {
	if len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
