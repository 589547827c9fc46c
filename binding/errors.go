package binding

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/go-sql-driver/mysql"
	"github.com/hhkbp2/tpcc"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// MySQL server error numbers.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrLockDeadlock    = 1213
	mysqlErrParse           = 1064
	mysqlErrBadField        = 1054
	mysqlErrNoSuchTable     = 1146
)

// PostgreSQL SQLSTATE codes.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgClassConnection      = "08"
	pgClassSyntaxOrAccess  = "42"
)

func classifyMysql(number uint16, err error) error {
	switch number {
	case mysqlErrLockWaitTimeout, mysqlErrLockDeadlock:
		return tpcc.NewTransientError(err)
	case mysqlErrParse, mysqlErrBadField, mysqlErrNoSuchTable:
		return tpcc.NewFatalError(err)
	}
	return err
}

func classifySQLState(code string, err error) error {
	switch {
	case code == pgSerializationFailure, code == pgDeadlockDetected:
		return tpcc.NewTransientError(err)
	case len(code) == 5 && code[:2] == pgClassConnection:
		return tpcc.NewTransientError(err)
	case len(code) == 5 && code[:2] == pgClassSyntaxOrAccess:
		return tpcc.NewFatalError(err)
	}
	return err
}

// classifyError wraps a driver error as transient or fatal. Errors that fit
// neither, and context errors, are returned unchanged.
func classifyError(err error) error {
	if err == nil || tpcc.IsTransient(err) || tpcc.IsFatal(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return tpcc.NewTransientError(err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return classifyMysql(myErr.Number, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code), err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code, err)
	}
	return err
}
