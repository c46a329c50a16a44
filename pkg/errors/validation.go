package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds component and board identifiers.
const maxIDLength = 128

// ValidateID validates a component identifier.
//
// IDs are opaque to the layout engine, but they travel through URLs, file
// names and cache keys, so the rules are conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path separators
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id %q contains invalid control characters", id)
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "id %q cannot contain path separators", id)
	}

	return nil
}

// ValidateSpan validates a component's row and column span against the
// number of grid columns.
func ValidateSpan(rowSpan, colSpan, columns int) error {
	if rowSpan <= 0 {
		return New(ErrCodeInvalidSize, "row span must be positive, got %d", rowSpan)
	}
	if colSpan <= 0 {
		return New(ErrCodeInvalidSize, "column span must be positive, got %d", colSpan)
	}
	if colSpan > columns {
		return New(ErrCodeTooWide, "column span %d exceeds grid width %d", colSpan, columns)
	}
	return nil
}

// ValidateIndex checks that i addresses an element of a sequence of length n.
func ValidateIndex(name string, i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeInvalidIndex, "%s index %d out of range [0, %d)", name, i, n)
	}
	return nil
}
