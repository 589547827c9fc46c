package workload

import (
	"math/rand"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/shopspring/decimal"
)

// Random streams derived from the base seed. Routines use their index, so
// the fixed streams are negative.
const (
	streamConstants = -1
	streamItems     = -2
	// warehouse w loads from streamWarehouse - w
	streamWarehouse = -3
)

// tpccRandom draws the TPC-C input values of one routine or one load unit.
type tpccRandom struct {
	r         *rand.Rand
	scaling   *tpcc.Scaling
	constants g.NURandConstants
	customer  *g.NURandGenerator
	item      *g.NURandGenerator
}

func newTPCCRandom(seed int64, scaling *tpcc.Scaling, constants g.NURandConstants) *tpccRandom {
	r := g.NewRandom(seed)
	return &tpccRandom{
		r:         r,
		scaling:   scaling,
		constants: constants,
		customer:  g.NewNURandGenerator(r, g.NURandCustomerID, constants.CustomerID, 1, scaling.CustPerDist()),
		item:      g.NewNURandGenerator(r, g.NURandItemID, constants.ItemID, 1, scaling.MaxItems()),
	}
}

func (self *tpccRandom) uniform(lowerBound, upperBound int64) int64 {
	return g.UniformInt(self.r, lowerBound, upperBound)
}

// percent is true with the given chance in percent.
func (self *tpccRandom) percent(p int64) bool {
	return self.uniform(1, 100) <= p
}

func (self *tpccRandom) districtID() int64 {
	return self.uniform(1, self.scaling.DistPerWarehouse())
}

func (self *tpccRandom) customerID() int64 {
	return self.customer.NextInt()
}

func (self *tpccRandom) itemID() int64 {
	return self.item.NextInt()
}

// lastNameNumber stays below the number of customers per district, because
// the first 1000 customers of a district own the names 0..999 in order.
func (self *tpccRandom) lastNameNumber() int64 {
	upperBound := self.scaling.CustPerDist() - 1
	if upperBound > 999 {
		upperBound = 999
	}
	return g.NURand(self.r, g.NURandCLast, self.constants.CLast, 0, upperBound)
}

func (self *tpccRandom) lastName() string {
	return g.LastName(self.lastNameNumber())
}

// otherWarehouse picks a warehouse of the database other than w; w itself
// when there is no other.
func (self *tpccRandom) otherWarehouse(w int64) int64 {
	if self.scaling.WarehouseCount() < 2 {
		return w
	}
	return g.UniformIntExcluding(self.r, 1, self.scaling.WarehouseCount(), w)
}

func (self *tpccRandom) aString(min, max int64) string {
	return g.AString(self.r, min, max)
}

func (self *tpccRandom) nString(min, max int64) string {
	return g.NString(self.r, min, max)
}

func (self *tpccRandom) money(lowerCents, upperCents int64) decimal.Decimal {
	return g.UniformDecimal(self.r, lowerCents, upperCents, 2)
}

// rate draws a four digit fraction, e.g. a tax rate.
func (self *tpccRandom) rate(lower, upper int64) decimal.Decimal {
	return g.UniformDecimal(self.r, lower, upper, 4)
}
