package tpcc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/hhkbp2/go-strftime"
	g "github.com/hhkbp2/tpcc/generator"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MeasurementType uint8

const (
	MeasurementHDRHistogram MeasurementType = 1 + iota
	MeasurementHDRHistogramAndRaw
	MeasurementRaw
)

// StatusType is the outcome of one transaction.
type StatusType uint8

const (
	// The transaction committed.
	StatusCommitted StatusType = 1 + iota
	// The transaction rolled back on purpose, e.g. New-Order on an unused
	// item. It is a valid outcome, not a failure.
	StatusAborted
	// The transaction failed: a fatal error, retries exhausted or the time
	// budget exceeded.
	StatusFailed
	// One retry after a transient error. Reported once per retry, on top of
	// the final outcome.
	StatusRetried
)

var (
	allStatus = []StatusType{StatusCommitted, StatusAborted, StatusFailed, StatusRetried}
)

func (self StatusType) String() string {
	switch self {
	case StatusCommitted:
		return "COMMITTED"
	case StatusAborted:
		return "ABORTED"
	case StatusFailed:
		return "FAILED"
	case StatusRetried:
		return "RETRIED"
	default:
		return "UNKNOW_STATUS"
	}
}

// TransactionRecord is what the driver reports for every transaction.
type TransactionRecord struct {
	Profile   string
	Latency   time.Duration
	Status    StatusType
	Retries   int
	Timestamp time.Time
}

// TransactionListener observes every recorded transaction.
type TransactionListener interface {
	OnTransaction(r *TransactionRecord)
}

const (
	TimeFormat = "%Y-%m-%d %H:%M:%S"
)

func FormatTime(t time.Time) string {
	return strftime.Format(TimeFormat, t)
}

// Used to export the collected measuremrnts into a usefull format, for example
// human readable text or machine readable JSON.
type MeasurementExporter interface {
	// Write a measurement to the exported format. v should be int64 or float64
	Write(metric string, measurement string, v interface{}) error
	io.Closer
}

type MakeMeasurementExporterFunc func(w io.WriteCloser) MeasurementExporter

var (
	MeasurementExporters map[string]MakeMeasurementExporterFunc
)

func init() {
	MeasurementExporters = map[string]MakeMeasurementExporterFunc{
		"TextMeasurementExporter": func(w io.WriteCloser) MeasurementExporter {
			return NewTextMeasurementExporter(w)
		},
		"JSONMeasurementExporter": func(w io.WriteCloser) MeasurementExporter {
			return NewJSONMeasurementExporter(w)
		},
		"JSONArrayMeasurementExporter": func(w io.WriteCloser) MeasurementExporter {
			return NewJSONArrayMeasurementExporter(w)
		},
	}
}

func NewMeasurementExporter(className string, w io.WriteCloser) (MeasurementExporter, error) {
	f, ok := MeasurementExporters[className]
	if !ok {
		return nil, g.NewErrorf("unsupported measurement exporter: %s", className)
	}
	e := f(w)
	return e, nil
}

// A single measured metric (such as NEW_ORDER latency).
type OneMeasurement interface {
	Measure(latency int64)
	GetName() string
	GetSummary() string
	// Report a transaction outcome.
	ReportStatus(status StatusType)
	GetStatusCount(status StatusType) int64
	// Exports the current measurements to a suitable format.
	ExportMeasurements(exporter MeasurementExporter) error
}

type OneMeasurementBase struct {
	Name            string
	MeasureLock     *sync.Mutex
	ReturnCodes     map[StatusType]int64
	ReturnCodesLock *sync.Mutex
}

func NewOneMeasurementBase(name string) *OneMeasurementBase {
	return &OneMeasurementBase{
		Name:            name,
		MeasureLock:     &sync.Mutex{},
		ReturnCodes:     make(map[StatusType]int64),
		ReturnCodesLock: &sync.Mutex{},
	}
}

func (self *OneMeasurementBase) GetName() string {
	return self.Name
}

func (self *OneMeasurementBase) ReportStatus(status StatusType) {
	self.ReturnCodesLock.Lock()
	defer self.ReturnCodesLock.Unlock()
	self.ReturnCodes[status]++
}

func (self *OneMeasurementBase) GetStatusCount(status StatusType) int64 {
	self.ReturnCodesLock.Lock()
	defer self.ReturnCodesLock.Unlock()
	return self.ReturnCodes[status]
}

func (self *OneMeasurementBase) ExportStatusCounts(exporter MeasurementExporter) error {
	for _, status := range allStatus {
		count := self.GetStatusCount(status)
		if count == 0 {
			continue
		}
		err := exporter.Write(self.GetName(), fmt.Sprintf("Return=%s", status), count)
		if err != nil {
			return err
		}
	}
	return nil
}

// Collects latency measurements, and reports them when requested.
type Measurements interface {
	// Report a single value of a single metric. E.g. for New-Order latency,
	// operation="NEW_ORDER" and latency is the measured value in
	// microseconds.
	Measure(operation string, latency int64)

	// Report the outcome of a single transaction.
	ReportStatus(operation string, status StatusType)

	// Record measures the latency, reports the outcome and the retries of
	// one transaction and notifies the listeners.
	Record(r *TransactionRecord)

	AddListener(l TransactionListener)

	// Return a one line summary of the measurements.
	GetSummary() string

	GetStatusCount(operation string, status StatusType) int64

	// Operations lists the measured operations in name order.
	Operations() []string

	// Export the current measurements to a suitable format.
	ExportMeasurements(exporter MeasurementExporter) error
}

type DefaultMeasurements struct {
	props              Properties
	measurementType    MeasurementType
	opToMeasurementMap map[string]OneMeasurement
	lock               *sync.RWMutex
	listeners          []TransactionListener
}

func NewDefaultMeasurements(props Properties) (*DefaultMeasurements, error) {
	var measurementType MeasurementType
	propStr := props.GetDefault(PropertyMeasurementType, PropertyMeasurementTypeDefault)
	switch propStr {
	case "hdrhistogram":
		measurementType = MeasurementHDRHistogram
	case "hdrhistogram+raw":
		measurementType = MeasurementHDRHistogramAndRaw
	case "raw":
		measurementType = MeasurementRaw
	default:
		return nil, NewConfigError(PropertyMeasurementType, propStr, "unknown measurement type")
	}
	return &DefaultMeasurements{
		props:              props,
		measurementType:    measurementType,
		opToMeasurementMap: make(map[string]OneMeasurement),
		lock:               &sync.RWMutex{},
	}, nil
}

func MustNewMeasurement(m OneMeasurement, err error) OneMeasurement {
	if err != nil {
		panic(fmt.Sprintf("unexpected error: %s", err))
	}
	return m
}

func (self *DefaultMeasurements) constructOneMeasurement(name string) OneMeasurement {
	switch self.measurementType {
	case MeasurementHDRHistogram:
		return MustNewMeasurement(NewOneMeasurementHdrHistogram(name, self.props))
	case MeasurementHDRHistogramAndRaw:
		return NewTwoInOneMeasurement(name,
			MustNewMeasurement(NewOneMeasurementHdrHistogram(name, self.props)),
			MustNewMeasurement(NewOneMeasurementRaw("Raw"+name, self.props)))
	case MeasurementRaw:
		return MustNewMeasurement(NewOneMeasurementRaw(name, self.props))
	default:
		panic("impossible to be here. Dead code reached. Bugs?")
	}
}

func (self *DefaultMeasurements) Measure(operation string, latency int64) {
	m := self.getOpMeasurement(operation)
	m.Measure(latency)
}

func (self *DefaultMeasurements) ReportStatus(operation string, status StatusType) {
	m := self.getOpMeasurement(operation)
	m.ReportStatus(status)
}

func (self *DefaultMeasurements) Record(r *TransactionRecord) {
	m := self.getOpMeasurement(r.Profile)
	m.Measure(NanosecondToMicrosecond(int64(r.Latency)))
	m.ReportStatus(r.Status)
	for i := 0; i < r.Retries; i++ {
		m.ReportStatus(StatusRetried)
	}
	self.lock.RLock()
	listeners := self.listeners
	self.lock.RUnlock()
	for _, l := range listeners {
		l.OnTransaction(r)
	}
}

func (self *DefaultMeasurements) AddListener(l TransactionListener) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.listeners = append(self.listeners, l)
}

func (self *DefaultMeasurements) GetSummary() string {
	parts := make([]string, 0)
	for _, op := range self.Operations() {
		if s := self.getOpMeasurement(op).GetSummary(); len(s) > 0 {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (self *DefaultMeasurements) GetStatusCount(operation string, status StatusType) int64 {
	self.lock.RLock()
	m, ok := self.opToMeasurementMap[operation]
	self.lock.RUnlock()
	if !ok {
		return 0
	}
	return m.GetStatusCount(status)
}

func (self *DefaultMeasurements) Operations() []string {
	self.lock.RLock()
	defer self.lock.RUnlock()
	ret := make([]string, 0, len(self.opToMeasurementMap))
	for op := range self.opToMeasurementMap {
		ret = append(ret, op)
	}
	sort.Strings(ret)
	return ret
}

func (self *DefaultMeasurements) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)
	for _, op := range self.Operations() {
		try(self.getOpMeasurement(op).ExportMeasurements(exporter))
	}
	return
}

func (self *DefaultMeasurements) getOpMeasurement(operation string) OneMeasurement {
	self.lock.RLock()
	m, ok := self.opToMeasurementMap[operation]
	self.lock.RUnlock()
	if ok {
		return m
	}
	self.lock.Lock()
	defer self.lock.Unlock()
	if m, ok = self.opToMeasurementMap[operation]; !ok {
		m = self.constructOneMeasurement(operation)
		self.opToMeasurementMap[operation] = m
	}
	return m
}

// Write human readable text. Tries to emulate the previous print report method.
type TextMeasurementExporter struct {
	io.WriteCloser
	buf *bufio.Writer
}

func NewTextMeasurementExporter(w io.WriteCloser) *TextMeasurementExporter {
	return &TextMeasurementExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
	}
}

func (self *TextMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	_, err := self.buf.WriteString(fmt.Sprintf("[%s], %s, %v\n", metric, measurement, v))
	return err
}

func (self *TextMeasurementExporter) Close() error {
	err := self.buf.Flush()
	err2 := self.WriteCloser.Close()
	if err != nil {
		return err
	}
	return err2
}

type innerJSONMeasurement struct {
	Metric      string      `json:"metric"`
	Measurement string      `json:"measurement"`
	Value       interface{} `json:"value"`
}

// Export measurements into a machine readable JSON file, one object per line.
type JSONMeasurementExporter struct {
	io.WriteCloser
	buf *bufio.Writer
}

func NewJSONMeasurementExporter(w io.WriteCloser) *JSONMeasurementExporter {
	return &JSONMeasurementExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
	}
}

func (self *JSONMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	b, err := json.Marshal(&innerJSONMeasurement{
		Metric:      metric,
		Measurement: measurement,
		Value:       v,
	})
	if err != nil {
		return err
	}
	if _, err = self.buf.Write(b); err != nil {
		return err
	}
	return self.buf.WriteByte('\n')
}

func (self *JSONMeasurementExporter) Close() error {
	err := self.buf.Flush()
	err2 := self.WriteCloser.Close()
	if err != nil {
		return err
	}
	return err2
}

// Export measurements into a machine readable JSON Array of measurement objects.
type JSONArrayMeasurementExporter struct {
	io.WriteCloser
	buf        *bufio.Writer
	afterFirst bool
}

func NewJSONArrayMeasurementExporter(w io.WriteCloser) *JSONArrayMeasurementExporter {
	object := &JSONArrayMeasurementExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
		afterFirst:  false,
	}
	object.buf.WriteString("[")
	return object
}

func (self *JSONArrayMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	b, err := json.Marshal(&innerJSONMeasurement{
		Metric:      metric,
		Measurement: measurement,
		Value:       v,
	})
	if err != nil {
		return err
	}
	if self.afterFirst {
		_, err = self.buf.WriteString(",")
		if err != nil {
			return err
		}
	} else {
		self.afterFirst = true
	}
	_, err = self.buf.Write(b)
	return err
}

func (self *JSONArrayMeasurementExporter) Close() error {
	_, err := self.buf.WriteString("]")
	if err != nil {
		return err
	}
	err = self.buf.Flush()
	err2 := self.WriteCloser.Close()
	if err != nil {
		return err
	}
	return err2
}

// One raw point, has two fields:
// timestamp(ms) when the datapoint is inserted, and the value.
type RawDataPoint struct {
	timestamp time.Time
	value     int64
}

func NewRawDataPoint(value int64) *RawDataPoint {
	return &RawDataPoint{
		timestamp: time.Now(),
		value:     value,
	}
}

type RawDataPointSlice []*RawDataPoint

func (self RawDataPointSlice) Len() int {
	return len(self)
}

func (self RawDataPointSlice) Less(i, j int) bool {
	return self[i].value < self[j].value
}

func (self RawDataPointSlice) Swap(i, j int) {
	self[i], self[j] = self[j], self[i]
}

// Record a series of measurements as raw data points without down sampling,
// optionally write to an output file when configured.
type OneMeasurementRaw struct {
	*OneMeasurementBase
	filePath       string
	output         io.Writer
	noSummaryStats bool
	measurements   RawDataPointSlice
	totalLatency   int64
	// A window of stats to print summary for at the next GetSummary() call.
	// It's suppose to be a one line summary, so we will just print count and
	// average.
	windowOperations   int64
	windowTotalLatency int64
}

func NewOneMeasurementRaw(name string, props Properties) (*OneMeasurementRaw, error) {
	noSummaryStats, err := props.GetBool(NoSummaryStats, NoSummaryStatsDefault)
	if err != nil {
		return nil, err
	}
	object := &OneMeasurementRaw{
		OneMeasurementBase: NewOneMeasurementBase(name),
		filePath:           props.GetDefault(OutputFilePath, OutputFilePathDefault),
		output:             OutputDest,
		noSummaryStats:     noSummaryStats,
		measurements:       make(RawDataPointSlice, 0, 1024),
	}
	return object, nil
}

func (self *OneMeasurementRaw) Measure(latency int64) {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	self.totalLatency += latency
	self.windowTotalLatency += latency
	self.windowOperations++
	self.measurements = append(self.measurements, NewRawDataPoint(latency))
}

func (self *OneMeasurementRaw) GetSummary() string {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()
	if self.windowOperations == 0 {
		return ""
	}
	ret := fmt.Sprintf("[%s: Count=%d, Avg=%.2f]",
		self.GetName(), self.windowOperations, float64(self.windowTotalLatency)/float64(self.windowOperations))
	self.windowOperations = 0
	self.windowTotalLatency = 0
	return ret
}

func try(err error) {
	if err != nil {
		panic(fmt.Errorf("Error: %s", err.Error()))
	}
}

func tryn(n int, err error) {
	try(err)
}

func catch(err *error) {
	if p := recover(); p != nil {
		*err = p.(error)
	}
}

func (self *OneMeasurementRaw) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	output := self.output
	if len(self.filePath) != 0 {
		f, err := os.OpenFile(self.filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		try(err)
		defer f.Close()
		output = f
	}
	// Output raw data points first then print out a summary of percentiles.
	w := bufio.NewWriter(output)
	tryn(w.WriteString(fmt.Sprintf(
		"%s latency raw data: op, timestamp(ms), latency(us)\n",
		self.GetName())))
	for _, p := range self.measurements {
		tryn(w.WriteString(fmt.Sprintf("%s,%d,%d\n",
			self.GetName(), NanosecondToMillisecond(p.timestamp.UnixNano()), p.value)))
	}
	try(w.Flush())

	total := len(self.measurements)
	name := self.GetName()
	try(exporter.Write(name, "Total Operations", total))
	if total > 0 && !self.noSummaryStats {
		s := make(RawDataPointSlice, total)
		copy(s, self.measurements)
		sort.Sort(s)
		try(exporter.Write(name, "AverageLatency(us)", float64(self.totalLatency)/float64(total)))
		try(exporter.Write(name, "MinLatency(us)", s[0].value))
		try(exporter.Write(name, "MaxLatency(us)", s[total-1].value))
		for _, p := range []float64{50, 90, 95, 99, 99.9} {
			try(exporter.Write(name, fmt.Sprintf("p%g", p), s[int(float64(total-1)*p/100)].value))
		}
	}
	try(self.ExportStatusCounts(exporter))
	return
}

// HdrHistogramLogWriter appends one JSON encoded histogram snapshot per line.
type HdrHistogramLogWriter struct {
	w io.Writer
}

func NewHdrHistogramLogWriter(w io.Writer) *HdrHistogramLogWriter {
	return &HdrHistogramLogWriter{
		w: w,
	}
}

func (self *HdrHistogramLogWriter) OutputHistogram(h *hdrhistogram.Histogram) error {
	b, err := json.Marshal(h.Export())
	if err != nil {
		return err
	}
	_, err = self.w.Write(append(b, '\n'))
	return err
}

// Take measurements and maintain a HdrHistogram of a given metric, such as
// NEW_ORDER latency.
type OneMeasurementHdrHistogram struct {
	*OneMeasurementBase
	histogram   *hdrhistogram.Histogram
	filePath    string
	file        *os.File
	writer      *HdrHistogramLogWriter
	percentiles []int64
}

// Helper function to parse the given percentile value string.
func parsePercentileValues(prop, defaultValue string) []int64 {
	parts := strings.Split(prop, ",")
	ret := make([]int64, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.ParseInt(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return parsePercentileValues(defaultValue, defaultValue)
		}
		ret = append(ret, int64(i))
	}
	return ret
}

func NewOneMeasurementHdrHistogram(name string, props Properties) (*OneMeasurementHdrHistogram, error) {
	prop := props.GetDefault(PropertyPercentiles, PropertyPercentilesDefault)
	percentiles := parsePercentileValues(prop, PropertyPercentilesDefault)
	shouldLog, err := props.GetBool(PropertyHdrHistogramOutput, PropertyHdrHistogramOutputDefault)
	if err != nil {
		return nil, err
	}
	max, err := props.GetInt64(PropertyHdrHistogramMax, PropertyHdrHistogramMaxDefault)
	if err != nil {
		return nil, err
	}
	sig, err := props.GetInt64(PropertyHdrHistogramSig, PropertyHdrHistogramSigDefault)
	if err != nil {
		return nil, err
	}
	var filePath string
	var f *os.File
	var writer *HdrHistogramLogWriter
	if shouldLog {
		filePath = props.GetDefault(PropertyHdrHistogramOutputPath, PropertyHdrHistogramOutputPathDefault)
		f, err = os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writer = NewHdrHistogramLogWriter(f)
	}
	object := &OneMeasurementHdrHistogram{
		OneMeasurementBase: NewOneMeasurementBase(name),
		histogram:          hdrhistogram.New(1, max, int(sig)),
		filePath:           filePath,
		file:               f,
		writer:             writer,
		percentiles:        percentiles,
	}
	return object, nil
}

// Latency is reported in micros. Values above the trackable maximum are
// clamped to it.
func (self *OneMeasurementHdrHistogram) Measure(latency int64) {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	if latency < 1 {
		latency = 1
	}
	if err := self.histogram.RecordValue(latency); err != nil {
		self.histogram.RecordValue(self.histogram.HighestTrackableValue())
	}
}

// This is called periodically from the status goroutine. There's a single
// status goroutine per client process. We optionally serialize the interval to
// log on this oppertunity.
func (self *OneMeasurementHdrHistogram) GetSummary() string {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()
	if self.writer != nil {
		if err := self.writer.OutputHistogram(self.histogram); err != nil {
			Warnf("fail to log histogram %s, error: %s", self.GetName(), err)
		}
	}
	if self.histogram.TotalCount() == 0 {
		return ""
	}
	format := "[%s: Count=%d, Max=%d, Min=%d, Avg=%.2f, 90=%d, 99=%d, 99.9=%d, 99.99=%d]"
	return fmt.Sprintf(format,
		self.GetName(),
		self.histogram.TotalCount(),
		self.histogram.Max(),
		self.histogram.Min(),
		self.histogram.Mean(),
		self.histogram.ValueAtQuantile(90),
		self.histogram.ValueAtQuantile(99),
		self.histogram.ValueAtQuantile(99.9),
		self.histogram.ValueAtQuantile(99.99))
}

// Count is the number of measured latencies, all outcomes included.
func (self *OneMeasurementHdrHistogram) Count() int64 {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()
	return self.histogram.TotalCount()
}

var (
	Suffixes = []string{"th", "st", "nd", "rd", "th", "th", "th", "th", "th", "th"}
)

func ordinal(p int64) string {
	switch p % 100 {
	case 11, 12, 13:
		return fmt.Sprintf("%dth", p)
	default:
		return fmt.Sprintf("%d%s", p, Suffixes[p%10])
	}
}

// This is called from a main thread, on orderly termination.
func (self *OneMeasurementHdrHistogram) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	if self.writer != nil {
		try(self.writer.OutputHistogram(self.histogram))
		self.file.Close()
		self.writer = nil
	}
	name := self.GetName()
	try(exporter.Write(name, "Operations", self.histogram.TotalCount()))
	try(exporter.Write(name, "AverageLatency(us)", self.histogram.Mean()))
	try(exporter.Write(name, "MinLatency(us)", self.histogram.Min()))
	try(exporter.Write(name, "MaxLatency(us)", self.histogram.Max()))

	for _, p := range self.percentiles {
		try(exporter.Write(name, ordinal(p)+"PercentileLatency(us)", self.histogram.ValueAtQuantile(float64(p))))
	}
	try(self.ExportStatusCounts(exporter))
	return
}

// Delegates to 2 measurement instances. Outcomes are counted once, by the
// first.
type TwoInOneMeasurement struct {
	*OneMeasurementBase
	thing1 OneMeasurement
	thing2 OneMeasurement
}

func NewTwoInOneMeasurement(name string, thing1, thing2 OneMeasurement) *TwoInOneMeasurement {
	return &TwoInOneMeasurement{
		OneMeasurementBase: NewOneMeasurementBase(name),
		thing1:             thing1,
		thing2:             thing2,
	}
}

func (self *TwoInOneMeasurement) Measure(latency int64) {
	self.thing1.Measure(latency)
	self.thing2.Measure(latency)
}

func (self *TwoInOneMeasurement) ReportStatus(status StatusType) {
	self.thing1.ReportStatus(status)
}

func (self *TwoInOneMeasurement) GetStatusCount(status StatusType) int64 {
	return self.thing1.GetStatusCount(status)
}

func (self *TwoInOneMeasurement) GetSummary() string {
	return self.thing1.GetSummary()
}

// This is called from a main goroutine, on orderly termination.
func (self *TwoInOneMeasurement) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)

	try(self.thing1.ExportMeasurements(exporter))
	try(self.thing2.ExportMeasurements(exporter))
	return
}
