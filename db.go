package tpcc

import (
	"context"
	"sort"

	g "github.com/hhkbp2/tpcc/generator"
)

// DB is a layer for accessing a database to be benchmarked.
// Each routine in the client will be given its own instance of
// whatever DB binding is to be used in the test, so an instance never serves
// two transactions at the same time.
// This type should be constructed using a no-argument constructor, so we can
// load it dynamically. Any argument-based initialization should be
// done by Init().
type DB interface {
	// Set the properties for this DB.
	SetProperties(p Properties)

	// Get the properties for this DB.
	GetProperties() Properties

	// Initialize any state for this DB.
	// Called once per DB instance; there is one DB instance per client routine.
	Init() error

	// Cleanup any state for this DB.
	// Called once per DB instance; there is one DB instance per client routine.
	Cleanup() error

	// Begin starts a transaction on a connection dedicated to it until
	// Commit or Rollback.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one database transaction.
type Tx interface {
	// Query runs a statement that returns rows.
	Query(ctx context.Context, stmt Statement, args ...interface{}) (Rows, error)

	// Exec runs a statement that returns no rows and reports the number of
	// rows affected.
	Exec(ctx context.Context, stmt Statement, args ...interface{}) (int64, error)

	// Insert bulk loads rows whose values are in the column order of table.
	Insert(ctx context.Context, table *Table, rows [][]interface{}) error

	Commit() error
	Rollback() error
}

// Rows follows database/sql.Rows. Scan destinations are *int64, *string,
// *decimal.Decimal, *time.Time, *sql.NullInt64 and *sql.NullTime.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close() error
}

type DBBase struct {
	p Properties
}

func NewDBBase() *DBBase {
	return &DBBase{}
}

func (self *DBBase) SetProperties(p Properties) {
	self.p = p
}

func (self *DBBase) GetProperties() Properties {
	return self.p
}

type MakeDBFunc func() DB

var (
	Databases = map[string]MakeDBFunc{}
)

func NewDB(database string, props Properties) (DB, error) {
	f, ok := Databases[database]
	if !ok {
		return nil, g.NewErrorf("unsupported database: %s", database)
	}
	db := f()
	db.SetProperties(props)
	return db, nil
}

func DatabaseNames() []string {
	ret := make([]string, 0, len(Databases))
	for name := range Databases {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// QueryRow runs a query expected to return at most one row and scans it.
// found is false when there is no row.
func QueryRow(ctx context.Context, tx Tx, stmt Statement, args []interface{}, dest ...interface{}) (found bool, err error) {
	rows, err := tx.Query(ctx, stmt, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return false, rows.Err()
	}
	if err := rows.Scan(dest...); err != nil {
		return false, err
	}
	return true, rows.Err()
}
