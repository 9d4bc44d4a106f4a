package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsForeignKeyErr reports whether err is a foreign key violation on any of
// the supported dialects.
func IsForeignKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	// PostgreSQL (error code 23503)
	if strings.Contains(err.Error(), "violates foreign key constraint") {
		return true
	}

	// MySQL (error code 1451/1452)
	if strings.Contains(err.Error(), "a foreign key constraint fails") {
		return true
	}

	// SQLite
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return true
	}

	return false
}
