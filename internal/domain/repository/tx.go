package repository

import "context"

// Transactor runs a function inside a single database transaction. The
// context passed to fn carries the transaction handle; repository methods
// called with it join the same transaction and every write rolls back
// together on error.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
