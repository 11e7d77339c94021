package pg

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/retry"
)

// maxTxAttempts bounds how many times a transaction that lost a serialization
// conflict is replayed
const maxTxAttempts = 3

// ExecuteInTx runs fn within a transaction at the requested isolation level,
// committing when fn succeeds and rolling back otherwise. Transactions that
// fail with a serialization conflict or deadlock are replayed from the start,
// so fn must be safe to run more than once.
func ExecuteInTx(ctx context.Context, db *sqlx.DB, isolation sql.IsolationLevel, fn func(tx *sqlx.Tx) error) error {
	if isolation == sql.LevelDefault {
		isolation = sql.LevelReadCommitted // Postgres default
	}

	_, err := retry.Retry(
		func() error {
			return executeInTxOnce(ctx, db, isolation, fn)
		},
		retry.RetriableWhen(IsRetriableTxError),
		retry.Limit(maxTxAttempts),
		retry.WithContext(ctx),
	)
	return err
}

func executeInTxOnce(ctx context.Context, db *sqlx.DB, isolation sql.IsolationLevel, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: isolation,
	})
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		// Always roll back so sql.DB releases the connection
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Wrapf(err, "failed to rollback transaction: %v", rollbackErr)
		}
		return err
	}
	return tx.Commit()
}
