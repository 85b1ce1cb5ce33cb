package sstv

import "math"

// Video passband.
const (
	passbandLow  = FreqBlack
	passbandSpan = FreqWhite - FreqBlack // 800 Hz
)

// MapLuminance maps Y in 0 .. 255 onto 1500 .. 2300 Hz.
// Input outside that range is clamped first so the tone never leaves the passband.
func MapLuminance(y float64) uint32 {
	y = min(max(y, 0), 255)

	return passbandLow + uint32(math.Floor((y/255.0)*passbandSpan))
}

// MapDifference maps a colour difference value in -128 .. 127 onto
// 1500 .. 2300 Hz.  Zero, i.e. no colour, lands on 1901 Hz.
// Out of range values are clamped to the domain edges.
func MapDifference(d float64) uint32 {
	d = min(max(d, -128), 127)

	return passbandLow + uint32(math.Floor(((d+128.0)/255.0)*passbandSpan))
}
