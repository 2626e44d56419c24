package password

import (
	"errors"
	"strings"
)

const MinLen = 12

var ErrTooShort = errors.New("password must be at least 12 characters")

// Validate trims pwd and enforces the minimum length for seeded admin
// passwords. It does not score strength.
func Validate(pwd string) (string, error) {
	trimmed := strings.TrimSpace(pwd)
	if len(trimmed) < MinLen {
		return trimmed, ErrTooShort
	}
	return trimmed, nil
}
