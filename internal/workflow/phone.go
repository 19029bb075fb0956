package workflow

import (
	"regexp"
	"strings"
)

// Myanmar mobile numbers: local "09..." or international "959"/"+959" prefix
// followed by 7 to 9 digits.
var myanmarPhonePattern = regexp.MustCompile(`^(09|\+?959)\d{7,9}$`)

// ValidMyanmarPhone strips all whitespace and matches the number against the
// Myanmar mobile pattern.
func ValidMyanmarPhone(phone string) bool {
	cleaned := strings.Join(strings.Fields(phone), "")
	return myanmarPhonePattern.MatchString(cleaned)
}
