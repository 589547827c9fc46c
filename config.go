package tpcc

const (
	// Scaling
	// The number of warehouses the database holds.
	PropertyWarehouseCount        = "warehousecount"
	PropertyWarehouseCountDefault = "1"
	// The first warehouse this process loads or drives.
	PropertyWarehouseStart        = "warehousestart"
	PropertyWarehouseStartDefault = "1"
	// The last warehouse this process loads or drives. Defaults to
	// `PropertyWarehouseCount`.
	PropertyWarehouseEnd = "warehouseend"
	// The number of rows in the item table.
	PropertyMaxItems                = "maxitems"
	PropertyMaxItemsDefault         = "100000"
	PropertyDistPerWarehouse        = "distperwarehouse"
	PropertyDistPerWarehouseDefault = "10"
	PropertyCustPerDist             = "custperdist"
	PropertyCustPerDistDefault      = "3000"
	PropertyOrdPerDist              = "ordperdist"
	PropertyOrdPerDistDefault       = "3000"
	// The upper bound of order lines per order.
	PropertyMaxNumItems        = "maxnumitems"
	PropertyMaxNumItemsDefault = "15"
	// The upper bound of descriptive text fields such as i_data.
	PropertyMaxItemLen        = "maxitemlen"
	PropertyMaxItemLenDefault = "50"
	// The number of transactions to run, 0 means run until
	// `PropertyMaxExecutionTime` or a stop signal.
	PropertyTransactionCount        = "transactioncount"
	PropertyTransactionCountDefault = "0"

	PropertyDebug           = "debug"
	PropertyDebugDefault    = "false"
	PropertyLogLevel        = "log.level"
	PropertyLogLevelDefault = "info"
	// Base seed of all random streams. Empty means seeded from the clock.
	PropertySeed = "seed"

	// Client
	// The workload to be loaded.
	PropertyWorkload        = "workload"
	PropertyWorkloadDefault = "tpcc"
	// The database binding to be used.
	PropertyDB        = "db"
	PropertyDBDefault = "memory"
	// The exporter to be used.
	PropertyExporter        = "exporter"
	PropertyExporterDefault = "TextMeasurementExporter"
	// If set to the path of a file, this file will be written instead of stdout.
	PropertyExportFile = "exportfile"
	// The number of client goroutines to run.
	PropertyThreadCount        = "threadcount"
	PropertyThreadCountDefault = "1"
	// Target number of transactions per second, 0 means unthrottled.
	PropertyTarget        = "target"
	PropertyTargetDefault = "0"
	// The maximum amount of time (in seconds) for which the benchmark will be run.
	PropertyMaxExecutionTime        = "maxexecutiontime"
	PropertyMaxExecutionTimeDefault = "0"
	PropertyStatusInterval          = "status.interval"
	PropertyStatusIntervalDefault   = "10"
	// Listen address of the prometheus endpoint, empty means disabled.
	PropertyPrometheusAddress = "prometheus.address"

	// loader
	// Whether this process loads the item table: "auto" loads it when the
	// warehouse range starts at 1, "always" and "never" force the choice.
	PropertyLoaderItems        = "loader.items"
	PropertyLoaderItemsDefault = "auto"
	// The number of rows per insert batch.
	PropertyLoaderBatchSize        = "loader.batchsize"
	PropertyLoaderBatchSizeDefault = "500"
	// Whether the run, check and shell commands load the warehouse range
	// first. Needed by databases that live inside the process, such as
	// memory.
	PropertyLoaderAutoLoad        = "loader.autoload"
	PropertyLoaderAutoLoadDefault = "false"

	// transaction mix
	PropertyNewOrderWeight           = "neworder.weight"
	PropertyNewOrderWeightDefault    = "45"
	PropertyPaymentWeight            = "payment.weight"
	PropertyPaymentWeightDefault     = "43"
	PropertyOrderStatusWeight        = "orderstatus.weight"
	PropertyOrderStatusWeightDefault = "4"
	PropertyDeliveryWeight           = "delivery.weight"
	PropertyDeliveryWeightDefault    = "4"
	PropertyStockLevelWeight         = "stocklevel.weight"
	PropertyStockLevelWeightDefault  = "4"

	// transaction profiles
	// Percentage of New-Order transactions that reference an unused item.
	PropertyNewOrderRollbackPercent        = "neworder.rollbackpercent"
	PropertyNewOrderRollbackPercentDefault = "1"
	// Percentage of Payment and Order-Status transactions that select the
	// customer by last name.
	PropertyPaymentByNamePercent        = "payment.bynamepercent"
	PropertyPaymentByNamePercentDefault = "40"
	// Commit unit of Delivery: "warehouse" or "district".
	PropertyDeliveryGranularity        = "delivery.granularity"
	PropertyDeliveryGranularityDefault = "warehouse"
	// How the driver picks the warehouse of a transaction: "uniform",
	// "zipfian" or "hotspot".
	PropertyWarehouseDistribution        = "warehousedistribution"
	PropertyWarehouseDistributionDefault = "uniform"
	// Percentage warehouses that constitute the hot set.
	HotspotDataFraction        = "hotspotdatafraction"
	HotspotDataFractionDefault = "0.2"
	// Percentage transactions that access the hot set.
	HotspotOpnFraction        = "hotspotopnfraction"
	HotspotOpnFractionDefault = "0.8"

	// How many times a transaction is retried after a transient failure.
	PropertyRetryLimit        = "retry.limit"
	PropertyRetryLimitDefault = "3"
	// Initial and maximum backoff between retries, in milliseconds.
	PropertyRetryBackoff           = "retry.backoff"
	PropertyRetryBackoffDefault    = "10"
	PropertyRetryMaxBackoff        = "retry.maxbackoff"
	PropertyRetryMaxBackoffDefault = "1000"
	// Wall clock budget of one transaction including its retries, in
	// milliseconds.
	PropertyTransactionTimeout        = "transaction.timeout"
	PropertyTransactionTimeoutDefault = "10000"

	// measurement
	PropertyMeasurementType        = "measurementtype"
	PropertyMeasurementTypeDefault = "hdrhistogram"

	// Optionally, user can configure an output file to save the raw
	// data points. Default is none, raw results will be written to stdout.
	OutputFilePath        = "measurement.raw.output_file"
	OutputFilePathDefault = ""
	// Optionally, user can request to not output summary stats. This is
	// useful if the user chains the raw measurement type behind the
	// HdrHistogram type which already outputs summary stats.
	NoSummaryStats        = "measurement.raw.no_summary"
	NoSummaryStatsDefault = "false"

	// The name of the property for deciding what percentile values to output.
	PropertyPercentiles        = "hdrhistogram.percentiles"
	PropertyPercentilesDefault = "90,95,99"
	// Whether to log a snapshot of each histogram on every status tick.
	PropertyHdrHistogramOutput        = "hdrhistogram.fileoutput"
	PropertyHdrHistogramOutputDefault = "false"
	PropertyHdrHistogramOutputPath    = "hdrhistogram.output.path"
	// The default value of `PropertyHdrHistogramOutputPath`
	PropertyHdrHistogramOutputPathDefault = "hdrhistogram.log"
	// The highest trackable latency in microseconds.
	PropertyHdrHistogramMax        = "hdrhistogram.max"
	PropertyHdrHistogramMaxDefault = "60000000"
	// The number of significant figures kept by the histogram.
	PropertyHdrHistogramSig        = "hdrhistogram.sig"
	PropertyHdrHistogramSigDefault = "3"
)
