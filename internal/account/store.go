package account

import "context"

// Store is the queryable reference dataset behind the resolver. Both finders
// take a key already reduced by normalize.Key and must return rows in the
// dataset's natural load order so ranking ties stay deterministic.
type Store interface {
	// FindExact returns rows whose trade key or legal key equals key.
	FindExact(ctx context.Context, key string) ([]Account, error)

	// FindContaining returns rows whose trade key or legal key contains key
	// as a substring.
	FindContaining(ctx context.Context, key string) ([]Account, error)

	// ReplaceAll swaps the full reference table for the given rows and
	// returns the number of rows loaded.
	ReplaceAll(ctx context.Context, accounts []Account) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}
