package paymethods

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"national with zero", "04141234567", true},
		{"national without zero", "4141234567", true},
		{"international plus", "+584141234567", true},
		{"international bare", "584141234567", true},
		{"formatted with dashes", "0414-123-45-67", true},
		{"formatted with spaces", "+58 424 1234567", true},
		{"digitel", "04121234567", true},
		{"movistar", "04161234567", true},
		{"landline prefix", "02121234567", false},
		{"too short", "041412345", false},
		{"too long", "041412345678", false},
		{"empty", "", false},
		{"letters only", "telefono", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPhone(tt.phone), "phone %q", tt.phone)
		})
	}
}

func TestFormatLocal(t *testing.T) {
	assert.Equal(t, "0414-1234567", FormatLocal("+584141234567"))
	assert.Equal(t, "0414-1234567", FormatLocal("4141234567"))
	assert.Equal(t, "0424-7654321", FormatLocal("0424 765 43 21"))
	// Numbers that do not normalize stay as typed.
	assert.Equal(t, "12345", FormatLocal("12345"))
}

func TestFormatInternational(t *testing.T) {
	assert.Equal(t, "+58 414 1234567", FormatInternational("04141234567"))
	assert.Equal(t, "+58 426 7654321", FormatInternational("+58-426-7654321"))
	assert.Equal(t, "12345", FormatInternational("12345"))
}
