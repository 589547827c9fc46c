package generator

import (
	"strconv"
	"sync/atomic"
)

// CounterGenerator hands out consecutive integers. It is safe for
// concurrent use; LastInt reports the most recent value handed out by any
// caller.
type CounterGenerator struct {
	*IntegerGeneratorBase
	count int64
	last  int64
}

func NewCounterGenerator(startCount int64) *CounterGenerator {
	object := &CounterGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(startCount - 1),
		count:                startCount - 1,
		last:                 startCount - 1,
	}
	return object
}

func (self *CounterGenerator) NextInt() int64 {
	ret := atomic.AddInt64(&self.count, 1)
	for {
		last := atomic.LoadInt64(&self.last)
		if last >= ret || atomic.CompareAndSwapInt64(&self.last, last, ret) {
			break
		}
	}
	return ret
}

func (self *CounterGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *CounterGenerator) LastInt() int64 {
	return atomic.LoadInt64(&self.last)
}

func (self *CounterGenerator) LastString() string {
	return strconv.FormatInt(self.LastInt(), 10)
}

func (self *CounterGenerator) Mean() float64 {
	panic("unsupported operation")
}
