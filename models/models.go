package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a random UUID for use as a primary key.
// All models use random UUIDs instead of sequential integers so that
// identifiers are globally unique and non-guessable.
func NewID() string {
	return uuid.New().String()
}

// ValidationError represents a data-validation failure raised by a model
// hook before a write is persisted.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsUniqueViolation reports whether a database error was caused by a
// uniqueness constraint. Works with both PostgreSQL and SQLite error text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
