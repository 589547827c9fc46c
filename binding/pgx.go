package binding

import (
	"context"
	"math"
	"strconv"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxDB talks to PostgreSQL through a pgx pool and bulk loads with COPY. It
// reads the postgres.* connection properties.
type PgxDB struct {
	*tpcc.DBBase
	pool       *pgxpool.Pool
	statements map[tpcc.Statement]string
}

func NewPgxDB() *PgxDB {
	return &PgxDB{
		DBBase: tpcc.NewDBBase(),
	}
}

func (self *PgxDB) Init() error {
	props := self.GetProperties()
	maxConns, err := props.GetInt64(PropertySQLMaxConns, PropertySQLMaxConnsDefault)
	if err != nil {
		return err
	}
	if maxConns < 1 || maxConns > math.MaxInt32 {
		return tpcc.NewConfigError(PropertySQLMaxConns, strconv.FormatInt(maxConns, 10), "must lie in [1, 2147483647]")
	}
	config, err := pgxpool.ParseConfig(postgresDSN(props))
	if err != nil {
		return tpcc.NewConfigError(PropertyPostgresHost, props.Get(PropertyPostgresHost), err.Error())
	}
	config.MaxConns = int32(maxConns)
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return classifyError(err)
	}
	self.pool = pool
	self.statements = boundStatements(driverPostgres)
	return nil
}

func (self *PgxDB) Cleanup() error {
	if self.pool != nil {
		self.pool.Close()
	}
	return nil
}

func (self *PgxDB) Begin(ctx context.Context) (tpcc.Tx, error) {
	tx, err := self.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, classifyError(err)
	}
	return &pgxTx{
		db: self,
		tx: tx,
	}, nil
}

type pgxTx struct {
	db *PgxDB
	tx pgx.Tx
}

func (self *pgxTx) query(stmt tpcc.Statement) (string, error) {
	query, ok := self.db.statements[stmt]
	if !ok {
		return "", tpcc.NewFatalError(g.NewErrorf("statement %s is not supported", stmt))
	}
	return query, nil
}

func (self *pgxTx) Query(ctx context.Context, stmt tpcc.Statement, args ...interface{}) (tpcc.Rows, error) {
	query, err := self.query(stmt)
	if err != nil {
		return nil, err
	}
	rows, err := self.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	return &pgxRows{rows: rows}, nil
}

func (self *pgxTx) Exec(ctx context.Context, stmt tpcc.Statement, args ...interface{}) (int64, error) {
	query, err := self.query(stmt)
	if err != nil {
		return 0, err
	}
	tag, err := self.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, classifyError(err)
	}
	return tag.RowsAffected(), nil
}

// copyValue converts money into the pgtype numeric COPY encodes in binary.
func copyValue(v interface{}) (interface{}, error) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return v, nil
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return nil, err
	}
	return n, nil
}

func (self *pgxTx) Insert(ctx context.Context, table *tpcc.Table, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		out := make([]interface{}, len(row))
		for i, v := range row {
			c, err := copyValue(v)
			if err != nil {
				return tpcc.NewFatalError(err)
			}
			out[i] = c
		}
		converted = append(converted, out)
	}
	_, err := self.tx.CopyFrom(ctx, pgx.Identifier{table.Name}, table.Columns, pgx.CopyFromRows(converted))
	return classifyError(err)
}

func (self *pgxTx) Commit() error {
	return classifyError(self.tx.Commit(context.Background()))
}

func (self *pgxTx) Rollback() error {
	return classifyError(self.tx.Rollback(context.Background()))
}

type pgxRows struct {
	rows pgx.Rows
}

func (self *pgxRows) Next() bool {
	return self.rows.Next()
}

func (self *pgxRows) Scan(dest ...interface{}) error {
	return classifyError(self.rows.Scan(dest...))
}

func (self *pgxRows) Err() error {
	return classifyError(self.rows.Err())
}

func (self *pgxRows) Close() error {
	self.rows.Close()
	return nil
}
