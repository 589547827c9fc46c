package generator

import (
	"math/rand"
	"strings"
)

const (
	// OriginalMarker tags the item and stock rows that count as "brand"
	// for the New-Order brand-generic flag.
	OriginalMarker = "ORIGINAL"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digits       = "0123456789"
)

var lastNameSyllables = []string{
	"BAR", "OUGHT", "ABLE", "PRI", "PRES",
	"ESE", "ANTI", "CALLY", "ATION", "EING",
}

func randomString(r *rand.Rand, charset string, min, max int64) string {
	n := UniformInt(r, min, max)
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return string(b)
}

// AString returns a random alphanumeric string whose length is uniform in
// [min, max].
func AString(r *rand.Rand, min, max int64) string {
	return randomString(r, alphanumeric, min, max)
}

// NString returns a random numeric string whose length is uniform in
// [min, max].
func NString(r *rand.Rand, min, max int64) string {
	return randomString(r, digits, min, max)
}

// LastName builds a customer last name from the three syllables selected by
// the digits of num, which must lie in [0, 999].
func LastName(num int64) string {
	return lastNameSyllables[num/100] +
		lastNameSyllables[(num/10)%10] +
		lastNameSyllables[num%10]
}

// ZipCode is four random digits followed by "11111".
func ZipCode(r *rand.Rand) string {
	return NString(r, 4, 4) + "11111"
}

// DataString returns an a-string of length [min, max]. When original is
// set the marker is written at a random position, replacing the characters
// there; max is at least the marker length.
func DataString(r *rand.Rand, min, max int64, original bool) string {
	markerLen := int64(len(OriginalMarker))
	if min < markerLen && original {
		min = markerLen
	}
	s := AString(r, min, max)
	if !original {
		return s
	}
	pos := UniformInt(r, 0, int64(len(s))-markerLen)
	return s[:pos] + OriginalMarker + s[pos+markerLen:]
}

func IsOriginal(data string) bool {
	return strings.Contains(data, OriginalMarker)
}
