package tpcc

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// ProfileNewOrder names the New-Order measurement, the basis of tpmC.
	ProfileNewOrder = "NEW_ORDER"
)

type Client interface {
	Run(ctx context.Context) error
}

// setup is shared by the clients: it parses the scaling and builds the
// measurements and the workload.
type setup struct {
	props        Properties
	scaling      *Scaling
	measurements Measurements
	workload     Workload
	threadCount  int64
}

func newSetup(args *Arguments) (*setup, error) {
	props := args.Properties
	scaling, err := NewScaling(props)
	if err != nil {
		return nil, err
	}
	threadCount, err := props.GetInt64(PropertyThreadCount, PropertyThreadCountDefault)
	if err != nil {
		return nil, err
	}
	if threadCount < 1 {
		return nil, NewConfigError(PropertyThreadCount, strconv.FormatInt(threadCount, 10), "must be positive")
	}
	measurements, err := NewDefaultMeasurements(props)
	if err != nil {
		return nil, err
	}
	workload, err := NewWorkload(props.GetDefault(PropertyWorkload, PropertyWorkloadDefault))
	if err != nil {
		return nil, err
	}
	if err := workload.Init(props, measurements); err != nil {
		return nil, errors.Wrap(err, "fail to init workload")
	}
	return &setup{
		props:        props,
		scaling:      scaling,
		measurements: measurements,
		workload:     workload,
		threadCount:  threadCount,
	}, nil
}

func (self *setup) newDB(database string) (DB, error) {
	db, err := NewDB(database, self.props)
	if err != nil {
		return nil, err
	}
	if err := db.Init(); err != nil {
		return nil, errors.Wrapf(err, "fail to init db %s", database)
	}
	return db, nil
}

// withSignals cancels ctx on SIGINT or SIGTERM.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

type Loader struct {
	args *Arguments
}

func NewLoader(args *Arguments) *Loader {
	return &Loader{
		args: args,
	}
}

// Run loads the warehouse range. Warehouses are handed out to `threadcount`
// routines, each with its own DB; the first failure cancels the others.
func (self *Loader) Run(ctx context.Context) error {
	s, err := newSetup(self.args)
	if err != nil {
		return err
	}
	defer s.workload.Cleanup()
	ctx, cancel := withSignals(ctx)
	defer cancel()

	return s.load(ctx, self.args.Database)
}

// autoLoad loads the warehouse range when `loader.autoload` is set.
func (self *setup) autoLoad(ctx context.Context, database string) error {
	autoLoad, err := self.props.GetBool(PropertyLoaderAutoLoad, PropertyLoaderAutoLoadDefault)
	if err != nil {
		return err
	}
	if !autoLoad {
		return nil
	}
	return self.load(ctx, database)
}

func (self *setup) load(ctx context.Context, database string) error {
	startTime := time.Now()
	Infof("loading %s with %d routines", self.scaling, self.threadCount)
	db, err := self.newDB(database)
	if err != nil {
		return err
	}
	err = self.workload.LoadFixed(ctx, db)
	db.Cleanup()
	if err != nil {
		return err
	}

	warehouses := make(chan int64)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(warehouses)
		for w := self.scaling.WarehouseStart(); w <= self.scaling.WarehouseEnd(); w++ {
			select {
			case warehouses <- w:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})
	for i := int64(0); i < self.threadCount; i++ {
		routine := i
		group.Go(func() error {
			db, err := self.newDB(database)
			if err != nil {
				return err
			}
			defer db.Cleanup()
			object, err := self.workload.InitRoutine(self.props, routine)
			if err != nil {
				return err
			}
			for w := range warehouses {
				warehouseStart := time.Now()
				if err := self.workload.DoInsert(groupCtx, db, object, w); err != nil {
					return err
				}
				Infof("loaded warehouse %d in %s", w, time.Since(warehouseStart))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	Infof("load finished in %s", time.Since(startTime))
	return nil
}

type Runner struct {
	args *Arguments
}

func NewRunner(args *Arguments) *Runner {
	return &Runner{
		args: args,
	}
}

type runOptions struct {
	target           float64
	maxExecutionTime time.Duration
	statusInterval   time.Duration
	prometheus       string
}

func parseRunOptions(p Properties) (*runOptions, error) {
	target, err := p.GetFloat64(PropertyTarget, PropertyTargetDefault)
	if err != nil {
		return nil, err
	}
	maxExecutionTime, err := p.GetInt64(PropertyMaxExecutionTime, PropertyMaxExecutionTimeDefault)
	if err != nil {
		return nil, err
	}
	statusInterval, err := p.GetInt64(PropertyStatusInterval, PropertyStatusIntervalDefault)
	if err != nil {
		return nil, err
	}
	if statusInterval < 1 {
		return nil, NewConfigError(PropertyStatusInterval, strconv.FormatInt(statusInterval, 10), "must be positive")
	}
	return &runOptions{
		target:           target,
		maxExecutionTime: time.Duration(SecondToNanosecond(maxExecutionTime)),
		statusInterval:   time.Duration(SecondToNanosecond(statusInterval)),
		prometheus:       p.Get(PropertyPrometheusAddress),
	}, nil
}

// Run drives the transaction mix until the transaction count is reached,
// `maxexecutiontime` passes, a stop signal arrives or ctx is done. Stop is
// observed between transactions only.
func (self *Runner) Run(ctx context.Context) error {
	s, err := newSetup(self.args)
	if err != nil {
		return err
	}
	defer s.workload.Cleanup()
	opts, err := parseRunOptions(s.props)
	if err != nil {
		return err
	}
	runID := uuid.New().String()
	ctx, cancel := withSignals(ctx)
	defer cancel()
	if err := s.autoLoad(ctx, self.args.Database); err != nil {
		return err
	}
	if opts.maxExecutionTime > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, opts.maxExecutionTime)
		defer cancelTimeout()
	}
	if len(opts.prometheus) > 0 {
		listener := NewPrometheusListener()
		s.measurements.AddListener(listener)
		if err := listener.Serve(ctx, opts.prometheus); err != nil {
			return err
		}
	}
	var limiter *rate.Limiter
	if opts.target > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.target), 1)
	}

	Infof("run %s: %s, %d routines", runID, s.scaling, s.threadCount)
	sequence := g.NewCounterGenerator(1)
	total := s.scaling.TransactionCount()
	var done atomic.Int64
	startTime := time.Now()

	statusCtx, stopStatus := context.WithCancel(context.Background())
	var statusWG sync.WaitGroup
	statusWG.Add(1)
	go func() {
		defer statusWG.Done()
		self.reportStatus(statusCtx, s.measurements, &done, startTime, opts.statusInterval)
	}()

	var wg sync.WaitGroup
	errs := make([]error, s.threadCount)
	for i := int64(0); i < s.threadCount; i++ {
		wg.Add(1)
		go func(routine int64) {
			defer wg.Done()
			errs[routine] = self.work(ctx, s, routine, limiter, sequence, total, &done)
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(startTime)
	stopStatus()
	statusWG.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			Errorf("routine %d stopped, error: %s", i, err)
		}
	}
	if err := self.export(s, runID, elapsed, done.Load()); err != nil {
		return err
	}
	if failed == len(errs) && failed > 0 {
		return errors.Wrap(errs[0], "every routine stopped on error")
	}
	return nil
}

func (self *Runner) work(
	ctx context.Context, s *setup, routine int64, limiter *rate.Limiter,
	sequence *g.CounterGenerator, total int64, done *atomic.Int64) error {

	db, err := s.newDB(self.args.Database)
	if err != nil {
		return err
	}
	defer db.Cleanup()
	object, err := s.workload.InitRoutine(s.props, routine)
	if err != nil {
		return err
	}
	// In-flight transactions never see the stop signal.
	txCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if total > 0 && sequence.NextInt() > total {
			return nil
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
		}
		if err := s.workload.DoTransaction(txCtx, db, object); err != nil {
			return err
		}
		done.Add(1)
	}
}

func (self *Runner) reportStatus(
	ctx context.Context, m Measurements, done *atomic.Int64, startTime time.Time, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var last int64
	lastTime := startTime
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			count := done.Load()
			current := float64(count-last) / now.Sub(lastTime).Seconds()
			Output("%s %d sec: %d operations; %.2f current ops/sec; %s",
				FormatTime(now), int64(now.Sub(startTime).Seconds()), count, current, m.GetSummary())
			last = count
			lastTime = now
		}
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func (self *Runner) export(s *setup, runID string, elapsed time.Duration, operations int64) (err error) {
	var w io.WriteCloser = nopWriteCloser{OutputDest}
	if path := s.props.Get(PropertyExportFile); len(path) > 0 {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "fail to create export file %s", path)
		}
		w = f
	}
	exporter, err := NewMeasurementExporter(s.props.GetDefault(PropertyExporter, PropertyExporterDefault), w)
	if err != nil {
		w.Close()
		return err
	}
	defer func() {
		if closeErr := exporter.Close(); err == nil {
			err = closeErr
		}
	}()
	defer catch(&err)
	runTime := NanosecondToMillisecond(int64(elapsed))
	try(exporter.Write("OVERALL", "RunID", runID))
	try(exporter.Write("OVERALL", "RunTime(ms)", runTime))
	try(exporter.Write("OVERALL", "Operations", operations))
	throughput := 0.0
	tpmC := 0.0
	if elapsed > 0 {
		throughput = float64(operations) / elapsed.Seconds()
		tpmC = float64(s.measurements.GetStatusCount(ProfileNewOrder, StatusCommitted)) / elapsed.Minutes()
	}
	try(exporter.Write("OVERALL", "Throughput(ops/sec)", throughput))
	try(exporter.Write("OVERALL", "tpmC", tpmC))
	for _, op := range s.measurements.Operations() {
		for _, status := range []StatusType{StatusCommitted, StatusAborted, StatusFailed} {
			try(exporter.Write(op, status.String(), s.measurements.GetStatusCount(op, status)))
		}
	}
	try(s.measurements.ExportMeasurements(exporter))
	return
}

// Checker runs the consistency checks of the workload against the database.
type Checker struct {
	args *Arguments
}

func NewChecker(args *Arguments) *Checker {
	return &Checker{
		args: args,
	}
}

func (self *Checker) Run(ctx context.Context) error {
	s, err := newSetup(self.args)
	if err != nil {
		return err
	}
	defer s.workload.Cleanup()
	checker, ok := s.workload.(CheckWorkload)
	if !ok {
		return g.NewErrorf("workload does not support consistency checks")
	}
	if err := s.autoLoad(ctx, self.args.Database); err != nil {
		return err
	}
	db, err := s.newDB(self.args.Database)
	if err != nil {
		return err
	}
	defer db.Cleanup()
	violations, err := checker.Check(ctx, db)
	if err != nil {
		return err
	}
	for _, v := range violations {
		Output("violation: %s", v)
	}
	if len(violations) > 0 {
		return g.NewErrorf("%d consistency violations", len(violations))
	}
	Output("consistency checks passed for warehouses [%d, %d]",
		s.scaling.WarehouseStart(), s.scaling.WarehouseEnd())
	return nil
}

type Shell struct {
	args *Arguments
	in   io.Reader
}

func NewShell(args *Arguments) *Shell {
	return &Shell{
		args: args,
		in:   os.Stdin,
	}
}

// Run reads commands line by line; each profile command runs one
// transaction against the current warehouse.
func (self *Shell) Run(ctx context.Context) error {
	s, err := newSetup(self.args)
	if err != nil {
		return err
	}
	defer s.workload.Cleanup()
	w, ok := s.workload.(ProfileWorkload)
	if !ok {
		return g.NewErrorf("workload does not support the shell")
	}
	if err := s.autoLoad(ctx, self.args.Database); err != nil {
		return err
	}
	Output("TPC-C Command Line Client")
	Output(`Type "help" for command line help`)

	db, err := s.newDB(self.args.Database)
	if err != nil {
		return err
	}
	defer db.Cleanup()
	object, err := w.InitRoutine(s.props, 0)
	if err != nil {
		return err
	}
	profiles := make(map[string]bool)
	for _, p := range w.Profiles() {
		profiles[p] = true
	}

	Output("Connected.")
	scanner := bufio.NewScanner(self.in)
	warehouse := s.scaling.WarehouseStart()
	for {
		PromptPrintf("> ")
		if !scanner.Scan() {
			break
		}
		startTime := time.Now()
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch {
		case parts[0] == "help":
			self.help(w.Profiles())
			continue
		case parts[0] == "quit":
			return nil
		case parts[0] == "warehouse":
			switch len(parts) {
			case 1:
			case 2:
				v, err := strconv.ParseInt(parts[1], 0, 64)
				if err != nil || v < s.scaling.WarehouseStart() || v > s.scaling.WarehouseEnd() {
					Output("Error: warehouse must lie in [%d, %d]", s.scaling.WarehouseStart(), s.scaling.WarehouseEnd())
					continue
				}
				warehouse = v
			default:
				Output(`Error: syntax is "warehouse [id]"`)
				continue
			}
			Output("Using warehouse %d", warehouse)
		case profiles[parts[0]]:
			r, err := w.DoProfile(ctx, db, object, parts[0], warehouse)
			if err != nil {
				Output("Error: %s", err)
				break
			}
			Output("Result: %s, retries: %d", r.Status, r.Retries)
		default:
			Output(`Error: unknown command "%s"`, parts[0])
		}
		Output("%d ms", NanosecondToMillisecond(int64(time.Since(startTime))))
	}
	return scanner.Err()
}

func (self *Shell) help(profiles []string) {
	Output("Commands")
	for _, p := range profiles {
		Output("  %s - Run one %s transaction", p, p)
	}
	Output("  warehouse [id] - Get or [set] the warehouse")
	Output("  quit - Quit")
}
