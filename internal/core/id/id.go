// Package id generates time-ordered UUIDv7 identifiers for batches,
// catalogs and every other persisted entity.
package id

import "github.com/google/uuid"

// ID aliases uuid.UUID so entities can use uuid helpers directly.
type ID = uuid.UUID

// New returns a UUIDv7. The embedded timestamp keeps primary keys
// roughly insert-ordered, which helps B-tree locality in Postgres.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails when the entropy source does;
		// a random V4 is an acceptable substitute.
		return uuid.New()
	}
	return id
}

// Parse validates and converts a string form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse is Parse for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// IsNil reports whether id is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
