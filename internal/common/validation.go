package common

import (
	"fmt"
	"slices"
	"strings"

	"relevancer/internal/errors"
)

// ValidateFormat checks the requested output format against the supported
// list, case-insensitively, and returns the normalized format.
func ValidateFormat(format string, supported []string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if slices.Contains(supported, normalized) {
		return normalized, nil
	}
	return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported format %q, supported: %s", format, strings.Join(supported, ", ")), nil)
}
