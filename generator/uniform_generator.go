package generator

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// UniformInt returns a value chosen uniformly from [lowerBound, upperBound].
func UniformInt(r *rand.Rand, lowerBound, upperBound int64) int64 {
	if upperBound < lowerBound {
		lowerBound, upperBound = upperBound, lowerBound
	}
	return lowerBound + r.Int63n(upperBound-lowerBound+1)
}

// UniformIntExcluding returns a value chosen uniformly from
// [lowerBound, upperBound] that is never `excluded`. The range must hold
// at least one other value.
func UniformIntExcluding(r *rand.Rand, lowerBound, upperBound, excluded int64) int64 {
	if excluded < lowerBound || excluded > upperBound {
		return UniformInt(r, lowerBound, upperBound)
	}
	if lowerBound == upperBound {
		panic(NewErrorf("no value in [%d, %d] except %d", lowerBound, upperBound, excluded))
	}
	// draw from a range one shorter and shift past the hole
	v := UniformInt(r, lowerBound, upperBound-1)
	if v >= excluded {
		v++
	}
	return v
}

// UniformDecimal returns a fixed-point value chosen uniformly from
// [lowerBound, upperBound] with `scale` digits after the decimal point,
// e.g. UniformDecimal(r, 100, 500000, 2) yields 1.00 .. 5000.00.
// Bounds are given in units of the last digit.
func UniformDecimal(r *rand.Rand, lowerBound, upperBound int64, scale int32) decimal.Decimal {
	return decimal.New(UniformInt(r, lowerBound, upperBound), -scale)
}

// UniformIntegerGenerator generates integers uniformly within an interval.
type UniformIntegerGenerator struct {
	*IntegerGeneratorBase
	random     *rand.Rand
	lowerBound int64
	upperBound int64
}

// Creates a generator that will return integers uniformly randomly from
// the interval [lowerBound, upperBound] inclusive (that is, lowerBound and
// upperBound are possible values)
func NewUniformIntegerGenerator(r *rand.Rand, lowerBound, upperBound int64) *UniformIntegerGenerator {
	if upperBound < lowerBound {
		lowerBound, upperBound = upperBound, lowerBound
	}
	return &UniformIntegerGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(lowerBound - 1),
		random:               r,
		lowerBound:           lowerBound,
		upperBound:           upperBound,
	}
}

func (self *UniformIntegerGenerator) NextInt() int64 {
	ret := UniformInt(self.random, self.lowerBound, self.upperBound)
	self.SetLastInt(ret)
	return ret
}

// NextIntExcluding draws like NextInt but never returns `excluded`.
// It is the home/remote selection used for supply warehouses and
// remote payment customers.
func (self *UniformIntegerGenerator) NextIntExcluding(excluded int64) int64 {
	ret := UniformIntExcluding(self.random, self.lowerBound, self.upperBound, excluded)
	self.SetLastInt(ret)
	return ret
}

func (self *UniformIntegerGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *UniformIntegerGenerator) Mean() float64 {
	return float64(self.lowerBound+self.upperBound) / 2.0
}

func (self *UniformIntegerGenerator) LowerBound() int64 {
	return self.lowerBound
}

func (self *UniformIntegerGenerator) UpperBound() int64 {
	return self.upperBound
}
