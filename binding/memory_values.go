package binding

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/shopspring/decimal"
)

func formatArg(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", x)
	case time.Time:
		return tpcc.FormatTime(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// assign copies a stored value into a Scan destination.
func assign(dest, src interface{}) error {
	switch d := dest.(type) {
	case *interface{}:
		*d = src
		return nil
	case *int64:
		v, err := toInt64(src)
		if err != nil {
			return err
		}
		*d = v
		return nil
	case *string:
		v, ok := src.(string)
		if !ok {
			return g.NewErrorf("cannot scan %T into *string", src)
		}
		*d = v
		return nil
	case *decimal.Decimal:
		v, err := toDecimal(src)
		if err != nil {
			return err
		}
		*d = v
		return nil
	case *time.Time:
		v, ok := src.(time.Time)
		if !ok {
			return g.NewErrorf("cannot scan %T into *time.Time", src)
		}
		*d = v
		return nil
	case *sql.NullInt64:
		v, err := toNullInt64(src)
		if err != nil {
			return err
		}
		*d = v
		return nil
	case *sql.NullTime:
		v, err := toNullTime(src)
		if err != nil {
			return err
		}
		*d = v
		return nil
	case sql.Scanner:
		return d.Scan(src)
	default:
		return g.NewErrorf("unsupported Scan destination %T", dest)
	}
}

func toInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case sql.NullInt64:
		if x.Valid {
			return x.Int64, nil
		}
	}
	return 0, g.NewErrorf("cannot convert %T to int64", v)
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case int64:
		return decimal.NewFromInt(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		return decimal.NewFromString(x)
	}
	return decimal.Zero, g.NewErrorf("cannot convert %T to decimal", v)
}

func toNullInt64(v interface{}) (sql.NullInt64, error) {
	switch x := v.(type) {
	case nil:
		return sql.NullInt64{}, nil
	case sql.NullInt64:
		return x, nil
	}
	i, err := toInt64(v)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: i, Valid: true}, nil
}

func toNullTime(v interface{}) (sql.NullTime, error) {
	switch x := v.(type) {
	case nil:
		return sql.NullTime{}, nil
	case sql.NullTime:
		return x, nil
	case time.Time:
		return sql.NullTime{Time: x, Valid: true}, nil
	}
	return sql.NullTime{}, g.NewErrorf("cannot convert %T to time", v)
}

func nullInt64Value(v sql.NullInt64) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Int64
}

func nullTimeValue(v sql.NullTime) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Time
}

// argReader decodes positional arguments; the first failure sticks and is
// reported by Err.
type argReader struct {
	name string
	args []interface{}
	err  error
}

func newArgReader(name string, args []interface{}, n int) *argReader {
	r := &argReader{
		name: name,
		args: args,
	}
	if len(args) != n {
		r.err = g.NewErrorf("%s: expected %d arguments, got %d", name, n, len(args))
	}
	return r
}

func (self *argReader) fail(i int, err error) {
	if self.err == nil {
		self.err = g.NewErrorf("%s: argument %d: %s", self.name, i+1, err)
	}
}

func (self *argReader) Int(i int) int64 {
	if self.err != nil {
		return 0
	}
	v, err := toInt64(self.args[i])
	if err != nil {
		self.fail(i, err)
	}
	return v
}

func (self *argReader) String(i int) string {
	if self.err != nil {
		return ""
	}
	v, ok := self.args[i].(string)
	if !ok {
		self.fail(i, g.NewErrorf("cannot convert %T to string", self.args[i]))
	}
	return v
}

func (self *argReader) Decimal(i int) decimal.Decimal {
	if self.err != nil {
		return decimal.Zero
	}
	v, err := toDecimal(self.args[i])
	if err != nil {
		self.fail(i, err)
	}
	return v
}

func (self *argReader) Time(i int) time.Time {
	if self.err != nil {
		return time.Time{}
	}
	v, ok := self.args[i].(time.Time)
	if !ok {
		self.fail(i, g.NewErrorf("cannot convert %T to time", self.args[i]))
	}
	return v
}

func (self *argReader) NullInt(i int) sql.NullInt64 {
	if self.err != nil {
		return sql.NullInt64{}
	}
	v, err := toNullInt64(self.args[i])
	if err != nil {
		self.fail(i, err)
	}
	return v
}

func (self *argReader) NullTime(i int) sql.NullTime {
	if self.err != nil {
		return sql.NullTime{}
	}
	v, err := toNullTime(self.args[i])
	if err != nil {
		self.fail(i, err)
	}
	return v
}

// Err wraps decoding failures as fatal: a statement called with the wrong
// arguments never succeeds on retry.
func (self *argReader) Err() error {
	if self.err == nil {
		return nil
	}
	return tpcc.NewFatalError(self.err)
}
