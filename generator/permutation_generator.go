package generator

import (
	"math/rand"
)

// PermutationGenerator hands out a random permutation of [1, n] one element
// at a time. The loader uses it to assign customers to orders so that every
// customer of a district owns exactly one initial order.
type PermutationGenerator struct {
	*IntegerGeneratorBase
	values []int64
	next   int
}

func NewPermutationGenerator(r *rand.Rand, n int64) *PermutationGenerator {
	values := make([]int64, n)
	for i := range values {
		values[i] = int64(i) + 1
	}
	r.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	return &PermutationGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(0),
		values:               values,
	}
}

// NextInt returns the next element; it panics when the permutation is
// exhausted.
func (self *PermutationGenerator) NextInt() int64 {
	if self.next >= len(self.values) {
		panic("permutation exhausted")
	}
	ret := self.values[self.next]
	self.next++
	self.SetLastInt(ret)
	return ret
}

func (self *PermutationGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *PermutationGenerator) Mean() float64 {
	return float64(len(self.values)+1) / 2
}

func (self *PermutationGenerator) Remaining() int {
	return len(self.values) - self.next
}

// RandomSubset picks exactly k distinct members of [1, n] and returns them
// as a set.
func RandomSubset(r *rand.Rand, n, k int64) map[int64]bool {
	if k > n {
		k = n
	}
	ret := make(map[int64]bool, k)
	if k <= 0 {
		return ret
	}
	for _, i := range r.Perm(int(n))[:k] {
		ret[int64(i)+1] = true
	}
	return ret
}
