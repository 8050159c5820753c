// Package codegen derives the next sequential business code from the highest
// existing one (C001 -> C002, B001 -> B002, TRX001 -> TRX002). The result is
// advisory: creation still enforces uniqueness at the store.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CustomerPrefix    = "C"
	ItemPrefix        = "B"
	TransactionPrefix = "TRX"

	minDigits = 3
)

// Next returns prefix+"001" when last is empty, otherwise increments the
// numeric suffix and keeps at least three digits of zero padding.
func Next(prefix, last string) (string, error) {
	if last == "" {
		return fmt.Sprintf("%s%0*d", prefix, minDigits, 1), nil
	}
	if !strings.HasPrefix(last, prefix) {
		return "", fmt.Errorf("code %q does not start with prefix %q", last, prefix)
	}
	suffix := last[len(prefix):]
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("code %q has a non-numeric suffix: %w", last, err)
	}
	width := len(suffix)
	if width < minDigits {
		width = minDigits
	}
	return fmt.Sprintf("%s%0*d", prefix, width, n+1), nil
}
