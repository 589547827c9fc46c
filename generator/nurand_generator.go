package generator

import (
	"math/rand"
)

// The A values of the TPC-C non-uniform random function, one per field.
const (
	NURandCLast      = int64(255)
	NURandCustomerID = int64(1023)
	NURandItemID     = int64(8191)
)

// NURandConstants holds the run-constant C for each NURand field. C is
// chosen once per load (or run) and stays fixed for all draws.
type NURandConstants struct {
	CLast      int64
	CustomerID int64
	ItemID     int64
}

// NewLoadConstants draws the constants used while populating the database.
func NewLoadConstants(r *rand.Rand) NURandConstants {
	return NURandConstants{
		CLast:      UniformInt(r, 0, NURandCLast),
		CustomerID: UniformInt(r, 0, NURandCustomerID),
		ItemID:     UniformInt(r, 0, NURandItemID),
	}
}

// NewRunConstants draws the constants for the measurement run. The C for
// customer last names must differ from the load value by a delta in
// [65, 119] that is neither 96 nor 112 (TPC-C clause 2.1.6.1).
func NewRunConstants(r *rand.Rand, load NURandConstants) NURandConstants {
	var cLast int64
	for {
		cLast = UniformInt(r, 0, NURandCLast)
		if ValidCLastDelta(load.CLast, cLast) {
			break
		}
	}
	return NURandConstants{
		CLast:      cLast,
		CustomerID: UniformInt(r, 0, NURandCustomerID),
		ItemID:     UniformInt(r, 0, NURandItemID),
	}
}

func ValidCLastDelta(load, run int64) bool {
	delta := load - run
	if delta < 0 {
		delta = -delta
	}
	return delta >= 65 && delta <= 119 && delta != 96 && delta != 112
}

// NURand computes (((random(0,A) | random(x,y)) + C) mod (y-x+1)) + x.
func NURand(r *rand.Rand, a, c, x, y int64) int64 {
	return ((UniformInt(r, 0, a)|UniformInt(r, x, y))+c)%(y-x+1) + x
}

// NURandGenerator is the non-uniform generator TPC-C uses to skew customer
// and item selection towards a hot subset of identifiers.
type NURandGenerator struct {
	*IntegerGeneratorBase
	random *rand.Rand
	a      int64
	c      int64
	x      int64
	y      int64
}

func NewNURandGenerator(r *rand.Rand, a, c, x, y int64) *NURandGenerator {
	if y < x {
		x, y = y, x
	}
	return &NURandGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(x - 1),
		random:               r,
		a:                    a,
		c:                    c,
		x:                    x,
		y:                    y,
	}
}

func (self *NURandGenerator) NextInt() int64 {
	ret := NURand(self.random, self.a, self.c, self.x, self.y)
	self.SetLastInt(ret)
	return ret
}

func (self *NURandGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *NURandGenerator) Mean() float64 {
	panic("unsupported operation")
}
