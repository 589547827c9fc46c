package generator

import (
	"math/rand"
)

// HotspotIntegerGenerator draws from [lowerBound, upperBound] where a
// hotsetFraction of the interval at the low end receives hotOpnFraction of
// the draws.
type HotspotIntegerGenerator struct {
	*IntegerGeneratorBase
	random         *rand.Rand
	lowerBound     int64
	upperBound     int64
	hotInterval    int64
	coldInterval   int64
	hotsetFraction float64
	hotOpnFraction float64
}

func checkFraction(value float64) float64 {
	if value < 0.0 || value > 1.0 {
		// Hotset fraction out of range
		value = 0.0
	}
	return value
}

func NewHotspotIntegerGenerator(
	r *rand.Rand, lowerBound, upperBound int64,
	hotsetFraction, hotOpnFraction float64) *HotspotIntegerGenerator {

	hotsetFraction = checkFraction(hotsetFraction)
	hotOpnFraction = checkFraction(hotOpnFraction)
	if lowerBound > upperBound {
		lowerBound, upperBound = upperBound, lowerBound
	}
	interval := upperBound - lowerBound + 1
	hotInterval := int64(float64(interval) * hotsetFraction)
	if hotInterval < 1 {
		hotInterval = 1
	}
	return &HotspotIntegerGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(lowerBound),
		random:               r,
		lowerBound:           lowerBound,
		upperBound:           upperBound,
		hotInterval:          hotInterval,
		coldInterval:         interval - hotInterval,
		hotsetFraction:       hotsetFraction,
		hotOpnFraction:       hotOpnFraction,
	}
}

func (self *HotspotIntegerGenerator) NextInt() int64 {
	var value int64
	if self.coldInterval == 0 || self.random.Float64() < self.hotOpnFraction {
		// Choose a value from the hot set.
		value = self.lowerBound + self.random.Int63n(self.hotInterval)
	} else {
		// Choose a value from the cold set.
		value = self.lowerBound + self.hotInterval + self.random.Int63n(self.coldInterval)
	}
	self.SetLastInt(value)
	return value
}

func (self *HotspotIntegerGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *HotspotIntegerGenerator) Mean() float64 {
	return self.hotOpnFraction*(float64(self.lowerBound)+float64(self.hotInterval)/2.0) +
		(1-self.hotOpnFraction)*(float64(self.lowerBound+self.hotInterval)+float64(self.coldInterval)/2.0)
}

func (self *HotspotIntegerGenerator) GetLowerBound() int64 {
	return self.lowerBound
}

func (self *HotspotIntegerGenerator) GetUpperBound() int64 {
	return self.upperBound
}

func (self *HotspotIntegerGenerator) GetHotsetFraction() float64 {
	return self.hotsetFraction
}

func (self *HotspotIntegerGenerator) GetHotOpnFraction() float64 {
	return self.hotOpnFraction
}
