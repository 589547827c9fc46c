package generator

import (
	"math"
	"math/rand"
)

const (
	ZipfianConstant = float64(0.99)
)

// zetaStatic computes the zeta constant needed for the distribution
// incrementally, for a distribution that has n items now but used to have
// st items, with the zipfian constant theta.
func zetaStatic(st, n int64, theta, initialSum float64) float64 {
	sum := initialSum
	for i := st; i < n; i++ {
		sum += 1 / math.Pow(float64(i+1), theta)
	}
	return sum
}

// ZipfianGenerator produces items between min and max (inclusive) such that
// some items are more popular than others: min is the most popular, min+1
// the next and so on. Drivers use it to skew the warehouse a terminal works
// on when uniform selection is not wanted.
//
// Initializing the generator is O(items) because of the zeta sum, which is
// negligible for warehouse counts.
//
// The algorithm used here is from
// "Quickly Generating Billion-Record Synthetic Databases",
// Jim Gray et al, SIGMOD 1994.
type ZipfianGenerator struct {
	*IntegerGeneratorBase
	random *rand.Rand
	// Number of items.
	items int64
	// Min item to generate.
	base int64
	// Computed parameters for generating the distribution.
	alpha, zetan, eta, theta, zeta2theta float64
}

// NewZipfianGenerator creates a zipfian generator for items between min and
// max (inclusive) with the given constant, using the precomputed zetan.
func NewZipfianGenerator(
	r *rand.Rand, min, max int64, zipfianConstant, zetan float64) *ZipfianGenerator {

	if max < min {
		min, max = max, min
	}
	items := max - min + 1
	theta := zipfianConstant
	zeta2theta := zetaStatic(0, 2, theta, 0)
	eta := (1 - math.Pow(2.0/float64(items), 1-theta)) / (1 - zeta2theta/zetan)

	object := &ZipfianGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(min),
		random:               r,
		items:                items,
		base:                 min,
		alpha:                1.0 / (1.0 - theta),
		zetan:                zetan,
		eta:                  eta,
		theta:                theta,
		zeta2theta:           zeta2theta,
	}
	return object
}

func NewZipfianGeneratorByInterval(r *rand.Rand, min, max int64) *ZipfianGenerator {
	if max < min {
		min, max = max, min
	}
	zetan := zetaStatic(0, max-min+1, ZipfianConstant, 0)
	return NewZipfianGenerator(r, min, max, ZipfianConstant, zetan)
}

// NextInt generates the next item. The distribution is skewed toward lower
// integers.
func (self *ZipfianGenerator) NextInt() int64 {
	u := self.random.Float64()
	uz := u * self.zetan
	var ret int64
	switch {
	case uz < 1.0:
		ret = self.base
	case uz < 1.0+math.Pow(0.5, self.theta):
		ret = self.base + 1
	default:
		ret = self.base + int64(float64(self.items)*math.Pow(self.eta*u-self.eta+1.0, self.alpha))
	}
	if ret >= self.base+self.items {
		ret = self.base + self.items - 1
	}
	self.SetLastInt(ret)
	return ret
}

func (self *ZipfianGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *ZipfianGenerator) Mean() float64 {
	panic("unsupported operation")
}
