package workload

import (
	"strconv"
	"time"

	"github.com/hhkbp2/tpcc"
)

const (
	DeliveryByWarehouse = "warehouse"
	DeliveryByDistrict  = "district"

	DistributionUniform = "uniform"
	DistributionZipfian = "zipfian"
	DistributionHotspot = "hotspot"

	LoadItemsAuto   = "auto"
	LoadItemsAlways = "always"
	LoadItemsNever  = "never"
)

// options is the parsed, immutable configuration of the TPC-C workload.
type options struct {
	scaling         *tpcc.Scaling
	seed            int64
	weights         []int64
	rollbackPercent int64
	byNamePercent   int64
	deliveryUnit    string
	distribution    string
	hotsetFraction  float64
	hotOpnFraction  float64
	retry           *retryPolicy
	loadItems       bool
	batchSize       int64
}

func percentProperty(p tpcc.Properties, key, defaultValue string) (int64, error) {
	v, err := p.GetInt64(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 100 {
		return 0, tpcc.NewConfigError(key, strconv.FormatInt(v, 10), "must lie in [0, 100]")
	}
	return v, nil
}

func choiceProperty(p tpcc.Properties, key, defaultValue string, choices ...string) (string, error) {
	v := p.GetDefault(key, defaultValue)
	for _, c := range choices {
		if v == c {
			return v, nil
		}
	}
	return "", tpcc.NewConfigError(key, v, "unknown value")
}

func durationProperty(p tpcc.Properties, key, defaultValue string, min int64) (time.Duration, error) {
	v, err := p.GetInt64(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if v < min {
		return 0, tpcc.NewConfigError(key, strconv.FormatInt(v, 10), "must be at least "+strconv.FormatInt(min, 10))
	}
	return time.Duration(tpcc.MillisecondToNanosecond(v)), nil
}

func parseOptions(p tpcc.Properties) (*options, error) {
	scaling, err := tpcc.NewScaling(p)
	if err != nil {
		return nil, err
	}
	opts := &options{
		scaling: scaling,
	}

	if propStr := p.Get(tpcc.PropertySeed); len(propStr) > 0 {
		seed, err := strconv.ParseInt(propStr, 0, 64)
		if err != nil {
			return nil, tpcc.NewConfigError(tpcc.PropertySeed, propStr, "not an integer")
		}
		opts.seed = seed
	} else {
		opts.seed = time.Now().UnixNano()
		tpcc.Infof("no %s given, using seed %d", tpcc.PropertySeed, opts.seed)
	}

	weights := []struct {
		key, defaultValue string
	}{
		{tpcc.PropertyNewOrderWeight, tpcc.PropertyNewOrderWeightDefault},
		{tpcc.PropertyPaymentWeight, tpcc.PropertyPaymentWeightDefault},
		{tpcc.PropertyOrderStatusWeight, tpcc.PropertyOrderStatusWeightDefault},
		{tpcc.PropertyDeliveryWeight, tpcc.PropertyDeliveryWeightDefault},
		{tpcc.PropertyStockLevelWeight, tpcc.PropertyStockLevelWeightDefault},
	}
	var total int64
	for _, w := range weights {
		v, err := p.GetInt64(w.key, w.defaultValue)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, tpcc.NewConfigError(w.key, strconv.FormatInt(v, 10), "must not be negative")
		}
		opts.weights = append(opts.weights, v)
		total += v
	}
	if total == 0 {
		return nil, tpcc.NewConfigError(tpcc.PropertyNewOrderWeight, "0", "the transaction mix has no positive weight")
	}

	if opts.rollbackPercent, err = percentProperty(p,
		tpcc.PropertyNewOrderRollbackPercent, tpcc.PropertyNewOrderRollbackPercentDefault); err != nil {
		return nil, err
	}
	if opts.byNamePercent, err = percentProperty(p,
		tpcc.PropertyPaymentByNamePercent, tpcc.PropertyPaymentByNamePercentDefault); err != nil {
		return nil, err
	}
	if opts.deliveryUnit, err = choiceProperty(p,
		tpcc.PropertyDeliveryGranularity, tpcc.PropertyDeliveryGranularityDefault,
		DeliveryByWarehouse, DeliveryByDistrict); err != nil {
		return nil, err
	}
	if opts.distribution, err = choiceProperty(p,
		tpcc.PropertyWarehouseDistribution, tpcc.PropertyWarehouseDistributionDefault,
		DistributionUniform, DistributionZipfian, DistributionHotspot); err != nil {
		return nil, err
	}
	if opts.hotsetFraction, err = p.GetFloat64(tpcc.HotspotDataFraction, tpcc.HotspotDataFractionDefault); err != nil {
		return nil, err
	}
	if opts.hotOpnFraction, err = p.GetFloat64(tpcc.HotspotOpnFraction, tpcc.HotspotOpnFractionDefault); err != nil {
		return nil, err
	}

	retry := &retryPolicy{}
	limit, err := p.GetInt64(tpcc.PropertyRetryLimit, tpcc.PropertyRetryLimitDefault)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, tpcc.NewConfigError(tpcc.PropertyRetryLimit, strconv.FormatInt(limit, 10), "must not be negative")
	}
	retry.limit = int(limit)
	if retry.backoff, err = durationProperty(p, tpcc.PropertyRetryBackoff, tpcc.PropertyRetryBackoffDefault, 0); err != nil {
		return nil, err
	}
	if retry.maxBackoff, err = durationProperty(p, tpcc.PropertyRetryMaxBackoff, tpcc.PropertyRetryMaxBackoffDefault, 0); err != nil {
		return nil, err
	}
	if retry.timeout, err = durationProperty(p, tpcc.PropertyTransactionTimeout, tpcc.PropertyTransactionTimeoutDefault, 1); err != nil {
		return nil, err
	}
	opts.retry = retry

	items, err := choiceProperty(p, tpcc.PropertyLoaderItems, tpcc.PropertyLoaderItemsDefault,
		LoadItemsAuto, LoadItemsAlways, LoadItemsNever)
	if err != nil {
		return nil, err
	}
	switch items {
	case LoadItemsAuto:
		opts.loadItems = scaling.WarehouseStart() == 1
	case LoadItemsAlways:
		opts.loadItems = true
	}
	if opts.batchSize, err = p.GetInt64(tpcc.PropertyLoaderBatchSize, tpcc.PropertyLoaderBatchSizeDefault); err != nil {
		return nil, err
	}
	if opts.batchSize < 1 {
		return nil, tpcc.NewConfigError(tpcc.PropertyLoaderBatchSize, strconv.FormatInt(opts.batchSize, 10), "must be positive")
	}
	return opts, nil
}
