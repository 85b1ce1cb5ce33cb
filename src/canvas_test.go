package sstv

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/draw"
	"pgregory.net/rapid"
)

func Test_RGB565(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), RGB565(255, 255, 255))
	assert.Equal(t, uint16(0x0000), RGB565(0, 0, 0))
	assert.Equal(t, uint16(0xF800), RGB565(255, 0, 0))
	assert.Equal(t, uint16(0x07E0), RGB565(0, 255, 0))
	assert.Equal(t, uint16(0x001F), RGB565(0, 0, 255))

	var r, g, b = Expand565(0xFFFF)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	r, g, b = Expand565(0xF800)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}

func Test_RGB565_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var p = rapid.Uint16().Draw(t, "p")

		var r, g, b = Expand565(p)

		if RGB565(r, g, b) != p {
			t.Fatalf("%04x expands to %d,%d,%d which packs to %04x", p, r, g, b, RGB565(r, g, b))
		}
	})
}

func Test_Canvas565_DrawImage(t *testing.T) {
	var c = NewCanvas565(20, 10)
	assert.Equal(t, 20, c.Width())
	assert.Equal(t, 10, c.Height())

	c.Fill(0x001F)
	draw.Draw(c, image.Rect(5, 5, 10, 10), image.NewUniform(color.RGBA{255, 0, 0, 255}), image.Point{}, draw.Src)

	assert.Equal(t, uint16(0x001F), c.Pix[0])
	assert.Equal(t, uint16(0xF800), c.Pix[5*20+5])

	var r, g, b = c.Pixel(9, 9)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	// Outside is ignored.
	c.Set(-1, 3, color.White)
	c.Set(20, 3, color.White)
	assert.Equal(t, Color565(0), c.At(50, 50))
}

func Test_Canvas565_FillRectClips(t *testing.T) {
	var c = NewCanvas565(8, 8)

	c.FillRect(image.Rect(-4, 6, 100, 100), 0x1234)

	assert.Equal(t, uint16(0), c.Pix[5*8+7])
	assert.Equal(t, uint16(0x1234), c.Pix[6*8+0])
	assert.Equal(t, uint16(0x1234), c.Pix[7*8+7])
}

func Test_NewPD120Canvas(t *testing.T) {
	var c = NewPD120Canvas()

	assert.NoError(t, CheckGeometry(c))
	assert.Len(t, c.Pix, ImageWidth*ImageHeight)
}
