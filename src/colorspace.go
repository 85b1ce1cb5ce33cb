package sstv

// ConvertToSSTV splits an 8 bit RGB triple into luminance and the two
// colour difference values.  Nothing is clamped: for valid input R-Y and
// B-Y stay roughly within -128 .. 127.
func ConvertToSSTV(r, g, b uint8) (y, ry, by float64) {
	var rf, gf, bf = float64(r), float64(g), float64(b)

	y = 0.299*rf + 0.587*gf + 0.114*bf
	ry = 0.713 * (rf - y)
	by = 0.564 * (bf - y)

	return y, ry, by
}

// Luminance is ConvertToSSTV without the difference channels.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
