package binding

import (
	"context"
	"database/sql"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/shopspring/decimal"
)

const (
	// Instances with the same name share one store, so every routine of a
	// process sees the same data.
	PropertyMemoryName        = "memory.name"
	PropertyMemoryNameDefault = "default"
	// Echo every statement at verbose log level.
	PropertyMemoryVerbose        = "memory.verbose"
	PropertyMemoryVerboseDefault = "false"
	// Pause before every statement, in milliseconds.
	PropertyMemorySimulateDelay        = "memory.simulatedelay"
	PropertyMemorySimulateDelayDefault = "0"
	// Pick the pause uniformly in [0, simulatedelay] instead.
	PropertyMemoryRandomizeDelay        = "memory.randomizedelay"
	PropertyMemoryRandomizeDelayDefault = "true"
	// Percentage of commits that fail with a serialization conflict.
	PropertyMemoryConflictPercent        = "memory.conflictpercent"
	PropertyMemoryConflictPercentDefault = "0"
)

var (
	ErrSerializationConflict = g.NewErrorf("could not serialize access due to concurrent update")
	ErrTxDone                = g.NewErrorf("transaction has already been committed or rolled back")
)

type districtKey struct {
	w, d int64
}

type customerKey struct {
	w, d, c int64
}

type orderKey struct {
	w, d, o int64
}

type stockKey struct {
	w, i int64
}

type lastNameKey struct {
	w, d int64
	last string
}

type warehouseRow struct {
	id                                       int64
	name, street1, street2, city, state, zip string
	tax, ytd                                 decimal.Decimal
}

type districtRow struct {
	id, wID                                  int64
	name, street1, street2, city, state, zip string
	tax, ytd                                 decimal.Decimal
	nextOID                                  int64
}

type customerRow struct {
	id, dID, wID                              int64
	first, middle, last                       string
	street1, street2, city, state, zip, phone string
	since                                     time.Time
	credit                                    string
	creditLim, discount, balance, ytdPayment  decimal.Decimal
	paymentCnt, deliveryCnt                   int64
	data                                      string
}

type historyRow struct {
	cID, cDID, cWID, dID, wID int64
	date                      time.Time
	amount                    decimal.Decimal
	data                      string
}

type orderRow struct {
	id, dID, wID, cID int64
	entryD            time.Time
	carrierID         sql.NullInt64
	olCnt, allLocal   int64
}

type orderLineRow struct {
	oID, dID, wID, number, iID, supplyWID int64
	deliveryD                             sql.NullTime
	quantity                              int64
	amount                                decimal.Decimal
	distInfo                              string
}

type itemRow struct {
	id, imID int64
	name     string
	price    decimal.Decimal
	data     string
}

type stockRow struct {
	iID, wID, quantity       int64
	dist                     [10]string
	ytd, orderCnt, remoteCnt int64
	data                     string
}

// memoryStore holds the nine tables. Only the transaction holding sem may
// touch the maps, which makes every transaction serializable.
type memoryStore struct {
	sem        chan struct{}
	warehouses map[int64]*warehouseRow
	districts  map[districtKey]*districtRow
	customers  map[customerKey]*customerRow
	byLastName map[lastNameKey][]*customerRow
	history    []*historyRow
	orders     map[orderKey]*orderRow
	lastOrder  map[customerKey]int64
	maxOrder   map[districtKey]int64
	newOrders  map[districtKey][]int64
	orderLines map[orderKey][]*orderLineRow
	items      map[int64]*itemRow
	stock      map[stockKey]*stockRow
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sem:        make(chan struct{}, 1),
		warehouses: make(map[int64]*warehouseRow),
		districts:  make(map[districtKey]*districtRow),
		customers:  make(map[customerKey]*customerRow),
		byLastName: make(map[lastNameKey][]*customerRow),
		orders:     make(map[orderKey]*orderRow),
		lastOrder:  make(map[customerKey]int64),
		maxOrder:   make(map[districtKey]int64),
		newOrders:  make(map[districtKey][]int64),
		orderLines: make(map[orderKey][]*orderLineRow),
		items:      make(map[int64]*itemRow),
		stock:      make(map[stockKey]*stockRow),
	}
}

var (
	memoryStoresLock sync.Mutex
	memoryStores     = make(map[string]*memoryStore)
)

func getMemoryStore(name string) *memoryStore {
	memoryStoresLock.Lock()
	defer memoryStoresLock.Unlock()
	s, ok := memoryStores[name]
	if !ok {
		s = newMemoryStore()
		memoryStores[name] = s
	}
	return s
}

// DropMemoryStore discards a named store; the next DB using the name starts
// empty.
func DropMemoryStore(name string) {
	memoryStoresLock.Lock()
	defer memoryStoresLock.Unlock()
	delete(memoryStores, name)
}

// MemoryDB is an in-process TPC-C database. It implements every statement
// natively and runs one transaction at a time. The data does not outlive the
// process, so a separate load command leaves nothing for a later run; set
// `loader.autoload` to have run, check and shell load the range first.
type MemoryDB struct {
	*tpcc.DBBase
	store           *memoryStore
	verbose         bool
	delay           int64
	randomizeDelay  bool
	conflictPercent int64
	random          *rand.Rand
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		DBBase: tpcc.NewDBBase(),
	}
}

func (self *MemoryDB) Init() error {
	props := self.GetProperties()
	verbose, err := props.GetBool(PropertyMemoryVerbose, PropertyMemoryVerboseDefault)
	if err != nil {
		return err
	}
	delay, err := props.GetInt64(PropertyMemorySimulateDelay, PropertyMemorySimulateDelayDefault)
	if err != nil {
		return err
	}
	randomizeDelay, err := props.GetBool(PropertyMemoryRandomizeDelay, PropertyMemoryRandomizeDelayDefault)
	if err != nil {
		return err
	}
	conflictPercent, err := props.GetInt64(PropertyMemoryConflictPercent, PropertyMemoryConflictPercentDefault)
	if err != nil {
		return err
	}
	self.store = getMemoryStore(props.GetDefault(PropertyMemoryName, PropertyMemoryNameDefault))
	self.verbose = verbose
	self.delay = delay
	self.randomizeDelay = randomizeDelay
	self.conflictPercent = conflictPercent
	self.random = g.NewTimeSeededRandom()
	return nil
}

func (self *MemoryDB) Cleanup() error {
	return nil
}

func (self *MemoryDB) Begin(ctx context.Context) (tpcc.Tx, error) {
	select {
	case self.store.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, tpcc.NewTransientError(ctx.Err())
	}
	return &memoryTx{
		db:    self,
		store: self.store,
	}, nil
}

func (self *MemoryDB) pause(ctx context.Context) error {
	if self.delay <= 0 {
		return nil
	}
	d := self.delay
	if self.randomizeDelay {
		d = g.UniformInt(self.random, 0, self.delay)
	}
	select {
	case <-time.After(time.Duration(tpcc.MillisecondToNanosecond(d))):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type memoryTx struct {
	db    *MemoryDB
	store *memoryStore
	undo  []func()
	done  bool
}

func (self *memoryTx) onRollback(f func()) {
	self.undo = append(self.undo, f)
}

func (self *memoryTx) before(ctx context.Context, name string, args []interface{}) error {
	if self.done {
		return tpcc.NewFatalError(ErrTxDone)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if self.db.verbose {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, formatArg(a))
		}
		tpcc.Verbosef("%s(%s)", name, strings.Join(parts, ", "))
	}
	return self.db.pause(ctx)
}

func (self *memoryTx) Query(ctx context.Context, stmt tpcc.Statement, args ...interface{}) (tpcc.Rows, error) {
	if err := self.before(ctx, stmt.String(), args); err != nil {
		return nil, err
	}
	rows, _, err := self.run(stmt, args)
	if err != nil {
		return nil, err
	}
	return &memoryRows{rows: rows, pos: -1}, nil
}

func (self *memoryTx) Exec(ctx context.Context, stmt tpcc.Statement, args ...interface{}) (int64, error) {
	if err := self.before(ctx, stmt.String(), args); err != nil {
		return 0, err
	}
	_, affected, err := self.run(stmt, args)
	return affected, err
}

func (self *memoryTx) Insert(ctx context.Context, table *tpcc.Table, rows [][]interface{}) error {
	if err := self.before(ctx, "Insert "+table.Name, nil); err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) != len(table.Columns) {
			return tpcc.NewFatalError(g.NewErrorf("%s: got %d values for %d columns",
				table.Name, len(row), len(table.Columns)))
		}
		if err := self.insertRow(table, row); err != nil {
			return err
		}
	}
	return nil
}

func (self *memoryTx) Commit() error {
	if self.done {
		return ErrTxDone
	}
	if self.db.conflictPercent > 0 && len(self.undo) > 0 &&
		g.UniformInt(self.db.random, 1, 100) <= self.db.conflictPercent {
		self.rollback()
		return tpcc.NewTransientError(ErrSerializationConflict)
	}
	self.finish()
	return nil
}

func (self *memoryTx) Rollback() error {
	if self.done {
		return ErrTxDone
	}
	self.rollback()
	return nil
}

func (self *memoryTx) rollback() {
	for i := len(self.undo) - 1; i >= 0; i-- {
		self.undo[i]()
	}
	self.finish()
}

func (self *memoryTx) finish() {
	self.undo = nil
	self.done = true
	<-self.store.sem
}

type memoryRows struct {
	rows [][]interface{}
	pos  int
}

func (self *memoryRows) Next() bool {
	if self.pos+1 >= len(self.rows) {
		self.pos = len(self.rows)
		return false
	}
	self.pos++
	return true
}

func (self *memoryRows) Scan(dest ...interface{}) error {
	if self.pos < 0 || self.pos >= len(self.rows) {
		return g.NewErrorf("Scan called without a row")
	}
	row := self.rows[self.pos]
	if len(dest) != len(row) {
		return g.NewErrorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return g.NewErrorf("Scan column %d: %s", i, err)
		}
	}
	return nil
}

func (self *memoryRows) Err() error {
	return nil
}

func (self *memoryRows) Close() error {
	self.pos = len(self.rows)
	return nil
}
