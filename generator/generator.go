package generator

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Generator is an expression that generates a sequence of string values,
// following some distribution(Uniform, NURand, Discrete, etc.)
type Generator interface {
	// NextString generates the next string in the distribution.
	NextString() string
	// LastString returns the previous string generated by the distribution,
	// e.g. the string returned by the last NextString() call.
	LastString() string
}

func NewErrorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// NewRandom returns a random source seeded with `seed`. Every generator owns
// the source it is given; sources are not safe for concurrent use, so each
// goroutine must build its own.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSeededRandom is used when no seed property is configured.
func NewTimeSeededRandom() *rand.Rand {
	return NewRandom(time.Now().UnixNano())
}

// DeriveSeed mixes a base seed with a stream index so that independent
// streams (loader, worker 0, worker 1, ...) never share a sequence.
func DeriveSeed(base int64, stream int64) int64 {
	// splitmix64 finalizer
	z := uint64(base) + uint64(stream+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
