// Package repositories holds the gorm-backed stores for each model. Every
// method takes a context and returns apperr-classified errors.
package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
)

// classify maps a gorm error to an apperr kind. notFound is the client
// message used when the record does not exist.
func classify(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.NotFound, err, notFound)
	default:
		return apperr.Wrap(apperr.Upstream, err, "")
	}
}

// isDuplicate reports a unique-constraint violation. TranslateError covers
// drivers that implement it; the message checks cover the ones that don't.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}
