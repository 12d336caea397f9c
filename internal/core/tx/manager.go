// Package tx defines the transaction boundary the domain services
// depend on, keeping them free of any database driver import.
package tx

import "context"

// Manager runs a function inside a database transaction. The function
// receives a derived context carrying the open transaction, so nested
// calls join it instead of opening a second one. An error from fn
// rolls the transaction back, nil commits it.
//
// The Postgres implementation lives in infrastructure/storage/postgres.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// RunSerializable is RunInTransaction at serializable isolation,
	// for read-then-write sections like stock allocation where two
	// concurrent checks must not both succeed.
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
