package sstv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_MapLuminance(t *testing.T) {
	assert.Equal(t, uint32(1500), MapLuminance(0))
	assert.Equal(t, uint32(2300), MapLuminance(255))
	assert.Equal(t, uint32(1900), MapLuminance(127.5))
	assert.Equal(t, uint32(1901), MapLuminance(128))

	// Clamped.
	assert.Equal(t, uint32(1500), MapLuminance(-20))
	assert.Equal(t, uint32(2300), MapLuminance(1000))
}

func Test_MapDifference(t *testing.T) {
	assert.Equal(t, uint32(1500), MapDifference(-128))
	assert.Equal(t, uint32(1901), MapDifference(0))
	// floor((127+128)/255*800) is 800.
	assert.Equal(t, uint32(2300), MapDifference(127))

	// Clamped.
	assert.Equal(t, uint32(1500), MapDifference(-500))
	assert.Equal(t, uint32(2300), MapDifference(180))
}

func Test_MapLuminance_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var a = rapid.Float64Range(-50, 300).Draw(t, "a")
		var b = rapid.Float64Range(-50, 300).Draw(t, "b")

		if a > b {
			a, b = b, a
		}

		var fa, fb = MapLuminance(a), MapLuminance(b)

		if fa > fb {
			t.Fatalf("MapLuminance(%f) = %d > MapLuminance(%f) = %d", a, fa, b, fb)
		}

		if fa < FreqBlack || fb > FreqWhite {
			t.Fatalf("left passband: %d %d", fa, fb)
		}
	})
}

func Test_MapDifference_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var a = rapid.Float64Range(-300, 300).Draw(t, "a")
		var b = rapid.Float64Range(-300, 300).Draw(t, "b")

		if a > b {
			a, b = b, a
		}

		var fa, fb = MapDifference(a), MapDifference(b)

		if fa > fb {
			t.Fatalf("MapDifference(%f) = %d > MapDifference(%f) = %d", a, fa, b, fb)
		}

		if fa < FreqBlack || fb > FreqWhite {
			t.Fatalf("left passband: %d %d", fa, fb)
		}
	})
}
