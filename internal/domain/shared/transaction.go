package shared

import "context"

// TransactionManager runs a function inside one storage transaction.
// Every repository write made through the function's context commits or
// rolls back together.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PassthroughTxManager runs the function on the ambient connection with
// no transaction boundary. It is the default for services that have not
// been wired to a transactional store.
type PassthroughTxManager struct{}

// WithinTransaction invokes fn with the context unchanged
func (PassthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
