package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMyanmarPhone(t *testing.T) {
	valid := []string{
		"09123456789",
		"09 123 456 789",
		"0912345678",
		"091234567",
		"9591234567",
		"+9591234567",
		"+959123456789",
	}
	for _, phone := range valid {
		assert.True(t, ValidMyanmarPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"09",
		"091234",          // too few digits
		"0912345678901",   // too many digits
		"08123456789",     // wrong prefix
		"+1 555 123 4567", // foreign number
		"09abcdefg",
		"123456789",
	}
	for _, phone := range invalid {
		assert.False(t, ValidMyanmarPhone(phone), "expected %q to be invalid", phone)
	}
}
