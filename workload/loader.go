package workload

import (
	"context"
	"time"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/shopspring/decimal"
)

const (
	// Initial balances; the year to date totals of warehouses and districts
	// equal the initial history of their customers.
	loadCustomerBalance = "-10.00"
	loadHistoryAmount   = "10.00"
	loadCreditLimit     = "50000.00"
	loadOrderQuantity   = 5
	goodCredit          = "GC"
	badCredit           = "BC"
	// Percent of supply warehouses that are remote, with several warehouses.
	remoteLinePercent = 1
)

// batch buffers the rows of one table and inserts them in transactions of
// at most size rows. The parent batch, if any, is flushed first so that
// referenced rows always exist before the referencing ones.
type batch struct {
	ctx       context.Context
	db        tpcc.DB
	table     *tpcc.Table
	warehouse int64
	size      int
	parent    *batch
	rows      [][]interface{}
}

func newBatch(ctx context.Context, db tpcc.DB, table *tpcc.Table, warehouse, size int64, parent *batch) *batch {
	return &batch{
		ctx:       ctx,
		db:        db,
		table:     table,
		warehouse: warehouse,
		size:      int(size),
		parent:    parent,
		rows:      make([][]interface{}, 0, size),
	}
}

func (self *batch) add(values ...interface{}) error {
	self.rows = append(self.rows, values)
	if len(self.rows) >= self.size {
		return self.flush()
	}
	return nil
}

func (self *batch) flush() error {
	if self.parent != nil {
		if err := self.parent.flush(); err != nil {
			return err
		}
	}
	if len(self.rows) == 0 {
		return nil
	}
	tx, err := self.db.Begin(self.ctx)
	if err != nil {
		return tpcc.NewLoadError(self.table.Name, self.warehouse, err)
	}
	if err := tx.Insert(self.ctx, self.table, self.rows); err != nil {
		tx.Rollback()
		return tpcc.NewLoadError(self.table.Name, self.warehouse, err)
	}
	if err := tx.Commit(); err != nil {
		return tpcc.NewLoadError(self.table.Name, self.warehouse, err)
	}
	self.rows = self.rows[:0]
	return nil
}

// Loader populates the tables for the warehouse range of a Scaling. Every
// warehouse draws from its own random stream, so the data does not depend on
// how warehouses are spread over routines.
type Loader struct {
	opts      *options
	constants g.NURandConstants
	now       time.Time
}

func newLoader(opts *options, constants g.NURandConstants) *Loader {
	return &Loader{
		opts:      opts,
		constants: constants,
		now:       time.Now(),
	}
}

// NewLoader builds a loader from properties.
func NewLoader(p tpcc.Properties) (*Loader, error) {
	opts, err := parseOptions(p)
	if err != nil {
		return nil, err
	}
	r := g.NewRandom(g.DeriveSeed(opts.seed, streamConstants))
	return newLoader(opts, g.NewLoadConstants(r)), nil
}

// Load performs the whole load, fixed tables then every warehouse of the
// range, on one DB.
func (self *Loader) Load(ctx context.Context, db tpcc.DB) error {
	if err := self.LoadFixed(ctx, db); err != nil {
		return err
	}
	s := self.opts.scaling
	for w := s.WarehouseStart(); w <= s.WarehouseEnd(); w++ {
		if err := self.LoadWarehouse(ctx, db, w); err != nil {
			return err
		}
	}
	return nil
}

func (self *Loader) count(ctx context.Context, db tpcc.DB, stmt tpcc.Statement, args ...interface{}) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	var n int64
	if _, err := tpcc.QueryRow(ctx, tx, stmt, args, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// LoadFixed rejects a target that already holds data for the range, then
// loads the item table when this process owns it.
func (self *Loader) LoadFixed(ctx context.Context, db tpcc.DB) error {
	s := self.opts.scaling
	n, err := self.count(ctx, db, tpcc.StmtCountWarehouses, s.WarehouseStart(), s.WarehouseEnd())
	if err != nil {
		return tpcc.NewLoadError(tpcc.TableWarehouse.Name, 0, err)
	}
	if n > 0 {
		return tpcc.NewLoadError(tpcc.TableWarehouse.Name, 0,
			g.NewErrorf("%d warehouses of [%d, %d] already exist, truncate the tables first",
				n, s.WarehouseStart(), s.WarehouseEnd()))
	}
	if !self.opts.loadItems {
		return nil
	}
	n, err = self.count(ctx, db, tpcc.StmtCountItems)
	if err != nil {
		return tpcc.NewLoadError(tpcc.TableItem.Name, 0, err)
	}
	if n > 0 {
		return tpcc.NewLoadError(tpcc.TableItem.Name, 0,
			g.NewErrorf("%d items already exist, truncate the tables first", n))
	}
	return self.loadItems(ctx, db)
}

func (self *Loader) dataMax() int64 {
	return self.opts.scaling.MaxItemLen()
}

func (self *Loader) dataMin() int64 {
	if n := int64(26); n < self.dataMax() {
		return n
	}
	return self.dataMax()
}

func (self *Loader) loadItems(ctx context.Context, db tpcc.DB) error {
	s := self.opts.scaling
	r := newTPCCRandom(g.DeriveSeed(self.opts.seed, streamItems), s, self.constants)
	original := g.RandomSubset(r.r, s.MaxItems(), s.MaxItems()/10)
	items := newBatch(ctx, db, tpcc.TableItem, 0, self.opts.batchSize, nil)
	for i := int64(1); i <= s.MaxItems(); i++ {
		if err := items.add(
			i,
			r.uniform(1, 10000),
			r.aString(14, 24),
			r.money(100, 10000),
			g.DataString(r.r, self.dataMin(), self.dataMax(), original[i]),
		); err != nil {
			return err
		}
	}
	tpcc.Debugf("loaded %d items", s.MaxItems())
	return items.flush()
}

func (self *Loader) address(r *tpccRandom) []interface{} {
	return []interface{}{
		r.aString(10, 20), // street 1
		r.aString(10, 20), // street 2
		r.aString(10, 20), // city
		r.aString(2, 2),   // state
		g.ZipCode(r.r),
	}
}

// LoadWarehouse loads every row owned by warehouse w.
func (self *Loader) LoadWarehouse(ctx context.Context, db tpcc.DB, w int64) error {
	s := self.opts.scaling
	r := newTPCCRandom(g.DeriveSeed(self.opts.seed, streamWarehouse-w), s, self.constants)
	size := self.opts.batchSize
	// year to date = initial history of the customers
	historyAmount := decimal.RequireFromString(loadHistoryAmount)
	districtYTD := historyAmount.Mul(decimal.NewFromInt(s.CustPerDist()))
	warehouseYTD := districtYTD.Mul(decimal.NewFromInt(s.DistPerWarehouse()))

	warehouses := newBatch(ctx, db, tpcc.TableWarehouse, w, size, nil)
	row := []interface{}{w, r.aString(6, 10)}
	row = append(row, self.address(r)...)
	row = append(row, r.rate(0, 2000), warehouseYTD)
	if err := warehouses.add(row...); err != nil {
		return err
	}
	if err := warehouses.flush(); err != nil {
		return err
	}

	if err := self.loadStock(ctx, db, r, w); err != nil {
		return err
	}

	districts := newBatch(ctx, db, tpcc.TableDistrict, w, size, nil)
	for d := int64(1); d <= s.DistPerWarehouse(); d++ {
		row := []interface{}{d, w, r.aString(6, 10)}
		row = append(row, self.address(r)...)
		row = append(row, r.rate(0, 1999), districtYTD, s.OrdPerDist()+1)
		if err := districts.add(row...); err != nil {
			return err
		}
	}
	if err := districts.flush(); err != nil {
		return err
	}

	for d := int64(1); d <= s.DistPerWarehouse(); d++ {
		if err := self.loadCustomers(ctx, db, r, w, d); err != nil {
			return err
		}
		if err := self.loadOrders(ctx, db, r, w, d); err != nil {
			return err
		}
	}
	return nil
}

func (self *Loader) loadStock(ctx context.Context, db tpcc.DB, r *tpccRandom, w int64) error {
	s := self.opts.scaling
	original := g.RandomSubset(r.r, s.MaxItems(), s.MaxItems()/10)
	stock := newBatch(ctx, db, tpcc.TableStock, w, self.opts.batchSize, nil)
	for i := int64(1); i <= s.MaxItems(); i++ {
		row := make([]interface{}, 0, len(tpcc.TableStock.Columns))
		row = append(row, i, w, r.uniform(10, 100))
		for d := 0; d < 10; d++ {
			row = append(row, r.aString(24, 24))
		}
		row = append(row, int64(0), int64(0), int64(0),
			g.DataString(r.r, self.dataMin(), self.dataMax(), original[i]))
		if err := stock.add(row...); err != nil {
			return err
		}
	}
	return stock.flush()
}

func (self *Loader) loadCustomers(ctx context.Context, db tpcc.DB, r *tpccRandom, w, d int64) error {
	s := self.opts.scaling
	size := self.opts.batchSize
	bad := g.RandomSubset(r.r, s.CustPerDist(), s.CustPerDist()/10)
	customers := newBatch(ctx, db, tpcc.TableCustomer, w, size, nil)
	history := newBatch(ctx, db, tpcc.TableHistory, w, size, customers)
	balance := decimal.RequireFromString(loadCustomerBalance)
	amount := decimal.RequireFromString(loadHistoryAmount)
	creditLimit := decimal.RequireFromString(loadCreditLimit)
	for c := int64(1); c <= s.CustPerDist(); c++ {
		var last string
		if c <= 1000 {
			last = g.LastName(c - 1)
		} else {
			last = g.LastName(g.NURand(r.r, g.NURandCLast, self.constants.CLast, 0, 999))
		}
		credit := goodCredit
		if bad[c] {
			credit = badCredit
		}
		row := []interface{}{c, d, w, r.aString(8, 16), "OE", last}
		row = append(row, self.address(r)...)
		row = append(row,
			r.nString(16, 16),
			self.now,
			credit,
			creditLimit,
			r.rate(0, 4999),
			balance,
			amount,
			int64(1),
			int64(0),
			r.aString(300, 500),
		)
		if err := customers.add(row...); err != nil {
			return err
		}
		if err := history.add(c, d, w, d, w, self.now, amount, r.aString(12, 24)); err != nil {
			return err
		}
	}
	return history.flush()
}

// loadOrders creates the initial orders of a district. Customers are
// assigned through a permutation; the newest 30% are undelivered and get a
// New-Order row.
func (self *Loader) loadOrders(ctx context.Context, db tpcc.DB, r *tpccRandom, w, d int64) error {
	s := self.opts.scaling
	size := self.opts.batchSize
	customers := g.NewPermutationGenerator(r.r, s.CustPerDist())
	quantity := g.NewConstantIntegerGenerator(loadOrderQuantity)
	orders := newBatch(ctx, db, tpcc.TableOrder, w, size, nil)
	lines := newBatch(ctx, db, tpcc.TableOrderLine, w, size, orders)
	newOrders := newBatch(ctx, db, tpcc.TableNewOrder, w, size, orders)
	firstNewOrder := s.FirstNewOrder()
	for o := int64(1); o <= s.OrdPerDist(); o++ {
		delivered := o < firstNewOrder
		count := r.uniform(tpcc.MinNumItems, s.MaxNumItems())
		allLocal := int64(1)
		orderLines := make([][]interface{}, 0, count)
		for n := int64(1); n <= count; n++ {
			supply := w
			if s.WarehouseCount() > 1 && r.percent(remoteLinePercent) {
				supply = r.otherWarehouse(w)
				allLocal = 0
			}
			var deliveryD interface{}
			amount := decimal.Zero
			if delivered {
				deliveryD = self.now
				amount = r.money(1, 999999)
			}
			orderLines = append(orderLines, []interface{}{
				o, d, w, n, r.uniform(1, s.MaxItems()), supply, deliveryD,
				quantity.NextInt(), amount, r.aString(24, 24),
			})
		}
		var carrier interface{}
		if delivered {
			carrier = r.uniform(1, 10)
		}
		if err := orders.add(o, d, w, customers.NextInt(), self.now, carrier, count, allLocal); err != nil {
			return err
		}
		for _, line := range orderLines {
			if err := lines.add(line...); err != nil {
				return err
			}
		}
		if !delivered {
			if err := newOrders.add(o, d, w); err != nil {
				return err
			}
		}
	}
	if err := lines.flush(); err != nil {
		return err
	}
	return newOrders.flush()
}
