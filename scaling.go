package tpcc

import (
	"fmt"
	"strconv"
)

const (
	// MinNumItems is the smallest order-line count of an order.
	MinNumItems = int64(5)
)

// Scaling holds the cardinalities of a TPC-C database and the warehouse range
// one process is responsible for. It is built once and shared read-only.
type Scaling struct {
	maxItems         int64
	distPerWarehouse int64
	custPerDist      int64
	ordPerDist       int64
	maxNumItems      int64
	maxItemLen       int64
	transactionCount int64
	warehouseCount   int64
	warehouseStart   int64
	warehouseEnd     int64
}

func NewScaling(p Properties) (*Scaling, error) {
	s := &Scaling{}
	fields := []struct {
		key          string
		defaultValue string
		target       *int64
		min          int64
	}{
		{PropertyMaxItems, PropertyMaxItemsDefault, &s.maxItems, 1},
		{PropertyDistPerWarehouse, PropertyDistPerWarehouseDefault, &s.distPerWarehouse, 1},
		{PropertyCustPerDist, PropertyCustPerDistDefault, &s.custPerDist, 1},
		{PropertyOrdPerDist, PropertyOrdPerDistDefault, &s.ordPerDist, 1},
		{PropertyMaxNumItems, PropertyMaxNumItemsDefault, &s.maxNumItems, MinNumItems},
		{PropertyMaxItemLen, PropertyMaxItemLenDefault, &s.maxItemLen, 8},
		{PropertyTransactionCount, PropertyTransactionCountDefault, &s.transactionCount, 0},
		{PropertyWarehouseCount, PropertyWarehouseCountDefault, &s.warehouseCount, 1},
		{PropertyWarehouseStart, PropertyWarehouseStartDefault, &s.warehouseStart, 1},
	}
	for _, f := range fields {
		v, err := p.GetInt64(f.key, f.defaultValue)
		if err != nil {
			return nil, err
		}
		if v < f.min {
			return nil, NewConfigError(f.key, strconv.FormatInt(v, 10),
				fmt.Sprintf("must be at least %d", f.min))
		}
		*f.target = v
	}
	end, err := p.GetInt64(PropertyWarehouseEnd, strconv.FormatInt(s.warehouseCount, 10))
	if err != nil {
		return nil, err
	}
	s.warehouseEnd = end
	if s.ordPerDist > s.custPerDist {
		return nil, NewConfigError(PropertyOrdPerDist, strconv.FormatInt(s.ordPerDist, 10),
			fmt.Sprintf("must not exceed %s=%d", PropertyCustPerDist, s.custPerDist))
	}
	if s.warehouseStart > s.warehouseCount {
		return nil, NewConfigError(PropertyWarehouseStart, strconv.FormatInt(s.warehouseStart, 10),
			fmt.Sprintf("must not exceed %s=%d", PropertyWarehouseCount, s.warehouseCount))
	}
	if s.warehouseEnd < s.warehouseStart || s.warehouseEnd > s.warehouseCount {
		return nil, NewConfigError(PropertyWarehouseEnd, strconv.FormatInt(s.warehouseEnd, 10),
			fmt.Sprintf("must lie in [%d, %d]", s.warehouseStart, s.warehouseCount))
	}
	return s, nil
}

func (self *Scaling) MaxItems() int64 {
	return self.maxItems
}

func (self *Scaling) DistPerWarehouse() int64 {
	return self.distPerWarehouse
}

func (self *Scaling) CustPerDist() int64 {
	return self.custPerDist
}

func (self *Scaling) OrdPerDist() int64 {
	return self.ordPerDist
}

func (self *Scaling) MaxNumItems() int64 {
	return self.maxNumItems
}

func (self *Scaling) MaxItemLen() int64 {
	return self.maxItemLen
}

// TransactionCount is 0 for runs bounded by time or a stop signal.
func (self *Scaling) TransactionCount() int64 {
	return self.transactionCount
}

func (self *Scaling) WarehouseCount() int64 {
	return self.warehouseCount
}

func (self *Scaling) WarehouseStart() int64 {
	return self.warehouseStart
}

func (self *Scaling) WarehouseEnd() int64 {
	return self.warehouseEnd
}

// Warehouses is the size of this process' warehouse range.
func (self *Scaling) Warehouses() int64 {
	return self.warehouseEnd - self.warehouseStart + 1
}

// NewOrdersPerDist is the number of undelivered orders per district after a
// load, the newest 30%.
func (self *Scaling) NewOrdersPerDist() int64 {
	return self.ordPerDist * 3 / 10
}

// FirstNewOrder is the lowest order id that starts undelivered.
func (self *Scaling) FirstNewOrder() int64 {
	return self.ordPerDist - self.NewOrdersPerDist() + 1
}

func (self *Scaling) String() string {
	return fmt.Sprintf("warehouses=%d [%d, %d] items=%d districts=%d customers=%d orders=%d",
		self.warehouseCount, self.warehouseStart, self.warehouseEnd,
		self.maxItems, self.distPerWarehouse, self.custPerDist, self.ordPerDist)
}
