package generator

import (
	"math/rand"
)

type Pair struct {
	Weight int64
	Value  string
}

// DiscreteGenerator picks one of a fixed set of values with integer weights.
// A draw is uniform in [1, total weight] and lands on the first value whose
// cumulative weight reaches it, so weights 45/43/4/4/4 map draws 1..45 to the
// first value, 46..88 to the second and so on.
type DiscreteGenerator struct {
	random    *rand.Rand
	values    []*Pair
	total     int64
	lastValue string
}

func NewDiscreteGenerator(r *rand.Rand) *DiscreteGenerator {
	return &DiscreteGenerator{
		random:    r,
		values:    make([]*Pair, 0),
		lastValue: "",
	}
}

func (self *DiscreteGenerator) NextString() string {
	if self.total <= 0 {
		panic("discrete generator has no positive weight")
	}
	self.lastValue = self.Pick(UniformInt(self.random, 1, self.total))
	return self.lastValue
}

// Pick maps a draw in [1, total weight] onto its value.
func (self *DiscreteGenerator) Pick(draw int64) string {
	var sum int64
	for _, p := range self.values {
		sum += p.Weight
		if draw <= sum {
			return p.Value
		}
	}
	// should never get here.
	panic("oops. should not get here")
}

func (self *DiscreteGenerator) LastString() string {
	if len(self.lastValue) == 0 {
		self.lastValue = self.NextString()
	}
	return self.lastValue
}

// AddValue appends a value; zero weights are kept but never drawn.
func (self *DiscreteGenerator) AddValue(weight int64, value string) {
	if weight < 0 {
		weight = 0
	}
	self.values = append(self.values, &Pair{
		Weight: weight,
		Value:  value,
	})
	self.total += weight
}

func (self *DiscreteGenerator) TotalWeight() int64 {
	return self.total
}
