package repository

import "context"

// SequenceRepository allocates document numbers. Next must run inside
// the caller's transaction so a rollback discards the allocation along
// with the document it was minted for.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
	Ensure(ctx context.Context, names ...string) error
}
