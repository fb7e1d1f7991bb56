package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. Its concrete type is infra-defined
// (pgx.Tx for Postgres); repositories must gracefully accept nil and fall
// back to their non-transactional path.
type Tx interface{}

// NoTX is passed where no enclosing transaction exists.
var NoTX Tx

// TransactionManager runs a function inside a database transaction,
// handing the transaction handle to the callback via Tx. Keeping the
// handle opaque keeps use-case interfaces free of driver types while
// still letting repositories run tx-bound statements.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
