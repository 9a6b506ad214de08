package validation

import "testing"

func TestIsValidISBN(t *testing.T) {
	tests := []struct {
		isbn string
		want bool
	}{
		{"9781234567897", true},
		{"0000000000000", true},
		{"978123456789", false},   // 12 digits
		{"97812345678971", false}, // 14 digits
		{"978123456789x", false},
		{"978-123456789", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidISBN(tt.isbn); got != tt.want {
			t.Errorf("IsValidISBN(%q) = %v, want %v", tt.isbn, got, tt.want)
		}
	}
}
