package repositories

import "context"

// TxFn is the body of a transaction. Repositories called with the ctx it
// receives pick up the open transaction through GetTx.
type TxFn func(ctx context.Context) error

// TransactionManager runs TxFn blocks atomically. A returned error or panic
// rolls the transaction back.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
