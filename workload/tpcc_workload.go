package workload

import (
	"context"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
)

const (
	ProfileNewOrder    = tpcc.ProfileNewOrder
	ProfilePayment     = "PAYMENT"
	ProfileOrderStatus = "ORDER_STATUS"
	ProfileDelivery    = "DELIVERY"
	ProfileStockLevel  = "STOCK_LEVEL"
)

// profileNames is in the order of the mix weights.
var profileNames = []string{
	ProfileNewOrder, ProfilePayment, ProfileOrderStatus, ProfileDelivery, ProfileStockLevel,
}

func AddWorkloads() {
	tpcc.Workloads["tpcc"] = func() tpcc.Workload {
		return NewTPCCWorkload()
	}
}

// TPCCWorkload populates a TPC-C database and drives the five-transaction
// mix against it.
// Properties to control the workload:
//   warehousecount, warehousestart, warehouseend: the database size and the
//                    range of warehouses this process owns (default: 1, 1, 1)
//   maxitems, distperwarehouse, custperdist, ordperdist: cardinalities
//                    (default: 100000, 10, 3000, 3000)
//   neworder.weight ... stocklevel.weight: the transaction mix
//                    (default: 45/43/4/4/4)
//   neworder.rollbackpercent: New-Orders that reference an unused item
//                    and roll back (default: 1)
//   payment.bynamepercent: Payment and Order-Status customers selected by
//                    last name (default: 40)
//   delivery.granularity: commit Delivery per "warehouse" or per "district"
//                    (default: warehouse)
//   warehousedistribution: uniform, zipfian or hotspot (default: uniform)
//   retry.limit, retry.backoff, retry.maxbackoff: retries of transient
//                    failures (default: 3, 10ms, 1000ms)
//   transaction.timeout: budget of one transaction in ms (default: 10000)
//   seed: base of every random stream (default: the clock)
type TPCCWorkload struct {
	opts         *options
	measurements tpcc.Measurements
	// C values of the data already loaded and of the run
	loadConstants g.NURandConstants
	runConstants  g.NURandConstants
	loader        *Loader
	profiles      map[string]profileFunc
}

func NewTPCCWorkload() *TPCCWorkload {
	return &TPCCWorkload{}
}

func (self *TPCCWorkload) Init(p tpcc.Properties, m tpcc.Measurements) error {
	opts, err := parseOptions(p)
	if err != nil {
		return err
	}
	self.opts = opts
	self.measurements = m
	r := g.NewRandom(g.DeriveSeed(opts.seed, streamConstants))
	self.loadConstants = g.NewLoadConstants(r)
	self.runConstants = g.NewRunConstants(r, self.loadConstants)
	self.loader = newLoader(opts, self.loadConstants)
	self.profiles = map[string]profileFunc{
		ProfileNewOrder:    doNewOrder,
		ProfilePayment:     doPayment,
		ProfileOrderStatus: doOrderStatus,
		ProfileDelivery:    doDelivery,
		ProfileStockLevel:  doStockLevel,
	}
	return nil
}

// routine is the state owned by one client routine.
type routine struct {
	workload  *TPCCWorkload
	index     int64
	random    *tpccRandom
	mix       *g.DiscreteGenerator
	warehouse g.IntegerGenerator
	exec      *executor
}

func (self *TPCCWorkload) newRoutine(index int64) *routine {
	opts := self.opts
	random := newTPCCRandom(g.DeriveSeed(opts.seed, index), opts.scaling, self.runConstants)
	mix := g.NewDiscreteGenerator(random.r)
	for i, name := range profileNames {
		mix.AddValue(opts.weights[i], name)
	}
	start, end := opts.scaling.WarehouseStart(), opts.scaling.WarehouseEnd()
	var warehouse g.IntegerGenerator
	switch opts.distribution {
	case DistributionZipfian:
		warehouse = g.NewZipfianGeneratorByInterval(random.r, start, end)
	case DistributionHotspot:
		warehouse = g.NewHotspotIntegerGenerator(random.r, start, end, opts.hotsetFraction, opts.hotOpnFraction)
	default:
		warehouse = g.NewUniformIntegerGenerator(random.r, start, end)
	}
	return &routine{
		workload:  self,
		index:     index,
		random:    random,
		mix:       mix,
		warehouse: warehouse,
		exec:      newExecutor(opts.retry, random.r),
	}
}

func (self *TPCCWorkload) InitRoutine(p tpcc.Properties, index int64) (interface{}, error) {
	return self.newRoutine(index), nil
}

func (self *TPCCWorkload) Cleanup() error {
	return nil
}

func (self *TPCCWorkload) LoadFixed(ctx context.Context, db tpcc.DB) error {
	return self.loader.LoadFixed(ctx, db)
}

func (self *TPCCWorkload) DoInsert(ctx context.Context, db tpcc.DB, object interface{}, warehouse int64) error {
	return self.loader.LoadWarehouse(ctx, db, warehouse)
}

func (self *TPCCWorkload) DoTransaction(ctx context.Context, db tpcc.DB, object interface{}) error {
	r := object.(*routine)
	_, err := self.DoProfile(ctx, db, r, r.mix.NextString(), r.warehouse.NextInt())
	return err
}

func (self *TPCCWorkload) Profiles() []string {
	return profileNames
}

// DoProfile runs one transaction of the named profile against warehouse and
// records it. The error is non nil only when the routine cannot go on.
func (self *TPCCWorkload) DoProfile(
	ctx context.Context, db tpcc.DB, object interface{}, profile string, warehouse int64) (*tpcc.TransactionRecord, error) {

	f, ok := self.profiles[profile]
	if !ok {
		return nil, g.NewErrorf("unknown profile: %s", profile)
	}
	r := object.(*routine)
	record, err := r.exec.run(ctx, db, r, profile, f, warehouse)
	self.measurements.Record(record)
	return record, err
}

func (self *TPCCWorkload) Check(ctx context.Context, db tpcc.DB) ([]string, error) {
	return newChecker(self.opts.scaling).Check(ctx, db)
}
