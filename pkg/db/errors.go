package db

import "strings"

// IsUniqueViolation reports whether the provided error is a unique violation.
// When constraint names are given, at least one must appear in the error text;
// otherwise any driver-reported duplicate matches, which also covers the
// sqlite wording used in tests.
func IsUniqueViolation(err error, constraintNames ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") &&
		!strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	for _, name := range constraintNames {
		if name != "" && strings.Contains(msg, name) {
			return true
		}
	}
	// sqlite reports "UNIQUE constraint failed: tabla.columna" without the
	// Postgres constraint name, so a confirmed duplicate still counts.
	return !strings.Contains(msg, "duplicate key value")
}
