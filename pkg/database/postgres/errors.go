package pg

import (
	"database/sql"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/pkg/errors"
)

// CheckNoRows maps sql.ErrNoRows to outErr, returning any other error as is
func CheckNoRows(inErr, outErr error) error {
	if IsNoRows(inErr) {
		return outErr
	}
	return inErr
}

func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

// IsRetriableTxError reports whether the transaction that produced err can be
// replayed as is
func IsRetriableTxError(err error) bool {
	return hasCode(err, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected)
}

func hasCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	for _, code := range codes {
		if pgErr.Code == code {
			return true
		}
	}
	return false
}
