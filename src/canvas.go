package sstv

import (
	"image"
	"image/color"
)

/*------------------------------------------------------------------
 *
 * Purpose:   	RGB565 frame buffer used as the image to transmit.
 *
 * Description:	Satisfies image.Image and draw.Image so that the
 *		usual image/draw and x/image tooling can paint into it,
 *		and PixelSource so the encoder can read it back.
 *
 *		Expansion back to 8 bits uses integer division,
 *		e.g. r5 * 255 / 31, so 0x1F becomes 255 exactly.
 *
 *---------------------------------------------------------------*/

const (
	rMask565 = 0b1111100000000000
	gMask565 = 0b0000011111100000
	bMask565 = 0b0000000000011111
)

// RGB565 packs 8 bit components.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
}

// Expand565 unpacks to 8 bit components.
func Expand565(p uint16) (r, g, b uint8) {
	var r5 = (p & rMask565) >> 11
	var g6 = (p & gMask565) >> 5
	var b5 = p & bMask565

	return uint8(r5 * 255 / 31), uint8(g6 * 255 / 63), uint8(b5 * 255 / 31)
}

// Color565 is a single RGB565 value.
type Color565 uint16

func (c Color565) RGBA() (r, g, b, a uint32) {
	var r8, g8, b8 = Expand565(uint16(c))

	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xffff
}

// Color565Model converts any colour to Color565.
var Color565Model = color.ModelFunc(func(c color.Color) color.Color {
	if c565, ok := c.(Color565); ok {
		return c565
	}

	var r, g, b, _ = c.RGBA()

	return Color565(RGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
})

// Canvas565 is an in-memory RGB565 image anchored at (0, 0).
type Canvas565 struct {
	Pix []uint16
	W   int
	H   int
}

func NewCanvas565(w, h int) *Canvas565 {
	return &Canvas565{Pix: make([]uint16, w*h), W: w, H: h}
}

// NewPD120Canvas allocates a canvas with the PD120 geometry.
func NewPD120Canvas() *Canvas565 {
	return NewCanvas565(ImageWidth, ImageHeight)
}

func (c *Canvas565) Width() int  { return c.W }
func (c *Canvas565) Height() int { return c.H }

func (c *Canvas565) Pixel(x, y int) (r, g, b uint8) {
	return Expand565(c.Pix[y*c.W+x])
}

// Fill sets every pixel to p.
func (c *Canvas565) Fill(p uint16) {
	for i := range c.Pix {
		c.Pix[i] = p
	}
}

// FillRect clips r to the canvas.
func (c *Canvas565) FillRect(r image.Rectangle, p uint16) {
	r = r.Intersect(c.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		var row = c.Pix[y*c.W : (y+1)*c.W]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = p
		}
	}
}

func (c *Canvas565) Bounds() image.Rectangle { return image.Rect(0, 0, c.W, c.H) }
func (c *Canvas565) ColorModel() color.Model { return Color565Model }

func (c *Canvas565) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(c.Bounds())) {
		return Color565(0)
	}

	return Color565(c.Pix[y*c.W+x])
}

func (c *Canvas565) Set(x, y int, col color.Color) {
	if !(image.Point{x, y}.In(c.Bounds())) {
		return
	}

	c.Pix[y*c.W+x] = uint16(Color565Model.Convert(col).(Color565)) //nolint:forcetypeassert
}
