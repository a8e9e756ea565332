package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into one atomic scope. The loan
// create path relies on it so a request is never visible as matched
// without its lender reference.
type UnitOfWork interface {
	// Do runs fn inside a transaction; any error rolls it back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
