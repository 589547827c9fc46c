package binding

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	PropertyMysqlHost            = "mysql.host"
	PropertyMysqlHostDefault     = "127.0.0.1"
	PropertyMysqlPort            = "mysql.port"
	PropertyMysqlPortDefault     = "3306"
	PropertyMysqlDatabase        = "mysql.db"
	PropertyMysqlDatabaseDefault = "tpcc"
	PropertyMysqlUser            = "mysql.user"
	PropertyMysqlUserDefault     = "root"
	PropertyMysqlPassword        = "mysql.password"
	PropertyMysqlPasswordDefault = ""
	// parseTime is required for DATETIME columns to scan into time.Time.
	PropertyMysqlOptions        = "mysql.options"
	PropertyMysqlOptionsDefault = "charset=utf8mb4&parseTime=true"

	PropertyPostgresHost            = "postgres.host"
	PropertyPostgresHostDefault     = "127.0.0.1"
	PropertyPostgresPort            = "postgres.port"
	PropertyPostgresPortDefault     = "5432"
	PropertyPostgresDatabase        = "postgres.db"
	PropertyPostgresDatabaseDefault = "tpcc"
	PropertyPostgresUser            = "postgres.user"
	PropertyPostgresUserDefault     = "postgres"
	PropertyPostgresPassword        = "postgres.password"
	PropertyPostgresPasswordDefault = ""
	PropertyPostgresSSLMode         = "postgres.sslmode"
	PropertyPostgresSSLModeDefault  = "disable"

	// Connections kept open per DB instance; one instance serves one routine.
	PropertySQLMaxConns        = "sql.maxconns"
	PropertySQLMaxConnsDefault = "2"
)

const (
	driverMysql    = "mysql"
	driverPostgres = "postgres"
)

func mysqlDSN(props tpcc.Properties) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s",
		props.GetDefault(PropertyMysqlUser, PropertyMysqlUserDefault),
		props.GetDefault(PropertyMysqlPassword, PropertyMysqlPasswordDefault),
		props.GetDefault(PropertyMysqlHost, PropertyMysqlHostDefault),
		props.GetDefault(PropertyMysqlPort, PropertyMysqlPortDefault),
		props.GetDefault(PropertyMysqlDatabase, PropertyMysqlDatabaseDefault),
		props.GetDefault(PropertyMysqlOptions, PropertyMysqlOptionsDefault))
}

func postgresDSN(props tpcc.Properties) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		props.GetDefault(PropertyPostgresUser, PropertyPostgresUserDefault),
		props.GetDefault(PropertyPostgresPassword, PropertyPostgresPasswordDefault),
		props.GetDefault(PropertyPostgresHost, PropertyPostgresHostDefault),
		props.GetDefault(PropertyPostgresPort, PropertyPostgresPortDefault),
		props.GetDefault(PropertyPostgresDatabase, PropertyPostgresDatabaseDefault),
		props.GetDefault(PropertyPostgresSSLMode, PropertyPostgresSSLModeDefault))
}

// SQLDB runs the statements over database/sql. driverName picks both the
// driver and the goqu dialect of bulk inserts.
type SQLDB struct {
	*tpcc.DBBase
	driverName string
	db         *sqlx.DB
	statements map[tpcc.Statement]string
}

func NewMysqlDB() *SQLDB {
	return &SQLDB{
		DBBase:     tpcc.NewDBBase(),
		driverName: driverMysql,
	}
}

func NewPostgresDB() *SQLDB {
	return &SQLDB{
		DBBase:     tpcc.NewDBBase(),
		driverName: driverPostgres,
	}
}

func (self *SQLDB) Init() error {
	props := self.GetProperties()
	maxConns, err := props.GetInt64(PropertySQLMaxConns, PropertySQLMaxConnsDefault)
	if err != nil {
		return err
	}
	if maxConns < 1 {
		return tpcc.NewConfigError(PropertySQLMaxConns, strconv.FormatInt(maxConns, 10), "must be positive")
	}
	var dsn string
	switch self.driverName {
	case driverMysql:
		dsn = mysqlDSN(props)
	case driverPostgres:
		dsn = postgresDSN(props)
	default:
		return g.NewErrorf("unsupported sql driver: %s", self.driverName)
	}
	db, err := sqlx.Open(self.driverName, dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(int(maxConns))
	db.SetMaxIdleConns(int(maxConns))
	self.attach(db)
	return nil
}

func (self *SQLDB) attach(db *sqlx.DB) {
	self.db = db
	self.statements = boundStatements(self.driverName)
}

func (self *SQLDB) Cleanup() error {
	if self.db != nil {
		return self.db.Close()
	}
	return nil
}

func (self *SQLDB) Begin(ctx context.Context) (tpcc.Tx, error) {
	tx, err := self.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, classifyError(err)
	}
	return &sqlTx{
		db: self,
		tx: tx,
	}, nil
}

type sqlTx struct {
	db *SQLDB
	tx *sqlx.Tx
}

func (self *sqlTx) query(stmt tpcc.Statement) (string, error) {
	query, ok := self.db.statements[stmt]
	if !ok {
		return "", tpcc.NewFatalError(g.NewErrorf("statement %s is not supported", stmt))
	}
	return query, nil
}

func (self *sqlTx) Query(ctx context.Context, stmt tpcc.Statement, args ...interface{}) (tpcc.Rows, error) {
	query, err := self.query(stmt)
	if err != nil {
		return nil, err
	}
	rows, err := self.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	return &sqlRows{rows: rows}, nil
}

func (self *sqlTx) Exec(ctx context.Context, stmt tpcc.Statement, args ...interface{}) (int64, error) {
	query, err := self.query(stmt)
	if err != nil {
		return 0, err
	}
	result, err := self.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classifyError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, classifyError(err)
	}
	return n, nil
}

// insertSQL renders one multi-row INSERT in the dialect of driverName.
func insertSQL(driverName string, table *tpcc.Table, rows [][]interface{}) (string, []interface{}, error) {
	cols := make([]interface{}, 0, len(table.Columns))
	for _, c := range table.Columns {
		cols = append(cols, c)
	}
	return goqu.Dialect(driverName).
		Insert(table.Name).
		Prepared(true).
		Cols(cols...).
		Vals(rows...).
		ToSQL()
}

func (self *sqlTx) Insert(ctx context.Context, table *tpcc.Table, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := insertSQL(self.db.driverName, table, rows)
	if err != nil {
		return tpcc.NewFatalError(err)
	}
	if _, err := self.tx.ExecContext(ctx, query, args...); err != nil {
		return classifyError(err)
	}
	return nil
}

func (self *sqlTx) Commit() error {
	return classifyError(self.tx.Commit())
}

func (self *sqlTx) Rollback() error {
	err := self.tx.Rollback()
	if err == sql.ErrTxDone {
		return err
	}
	return classifyError(err)
}

type sqlRows struct {
	rows *sql.Rows
}

func (self *sqlRows) Next() bool {
	return self.rows.Next()
}

func (self *sqlRows) Scan(dest ...interface{}) error {
	return classifyError(self.rows.Scan(dest...))
}

func (self *sqlRows) Err() error {
	return classifyError(self.rows.Err())
}

func (self *sqlRows) Close() error {
	return self.rows.Close()
}
