package generator

import (
	"strings"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestLastName(t *testing.T) {
	require.Equal(t, "BARBARBAR", LastName(0))
	require.Equal(t, "OUGHTABLEPRI", LastName(123))
	require.Equal(t, "PRESESEANTI", LastName(456))
	require.Equal(t, "EINGEINGEING", LastName(999))
	require.Equal(t, "BARBARCALLY", LastName(7))
}

func TestAStringAndNString(t *testing.T) {
	r := NewRandom(1)
	for i := 0; i < 1000; i++ {
		s := AString(r, 8, 16)
		require.True(t, len(s) >= 8 && len(s) <= 16)
		n := NString(r, 16, 16)
		require.Len(t, n, 16)
		for _, c := range n {
			require.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestZipCode(t *testing.T) {
	r := NewRandom(2)
	zip := ZipCode(r)
	require.Len(t, zip, 9)
	require.True(t, strings.HasSuffix(zip, "11111"))
}

func TestDataString(t *testing.T) {
	r := NewRandom(3)
	for i := 0; i < 1000; i++ {
		plain := DataString(r, 26, 50, false)
		require.True(t, len(plain) >= 26 && len(plain) <= 50)
		original := DataString(r, 26, 50, true)
		require.True(t, len(original) >= 26 && len(original) <= 50)
		require.True(t, IsOriginal(original))
	}
	short := DataString(r, 1, 8, true)
	require.Equal(t, OriginalMarker, short)
}
