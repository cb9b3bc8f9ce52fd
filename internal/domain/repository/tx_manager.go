package repository

import "context"

// TransactionManager runs fn inside a database transaction. The
// transaction travels through the context so every repository call made
// with that context joins it; a returned error rolls everything back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
