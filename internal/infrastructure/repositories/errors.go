package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a uniqueness-constraint violation.
// Covers gorm's translated error plus the raw postgres and sqlite forms,
// since tests run on sqlite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
