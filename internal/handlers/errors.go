package handlers

import (
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// isUniqueViolation matches the sqlite driver's unique-constraint error.
// The uniqueness invariants are enforced by the store at insert time, so
// this is also how a lost creation race surfaces.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// storeError maps a gorm error onto the API error taxonomy.
func storeError(err error, notFound string, notUnique string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return huma.Error404NotFound(notFound)
	case isUniqueViolation(err):
		return huma.Error409Conflict(notUnique)
	default:
		return huma.Error500InternalServerError("Unexpected database error: " + err.Error())
	}
}
