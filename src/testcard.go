package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Base image and text overlays.
 *
 * Description:	The base image is what gets sent when there is no
 *		picture: a flat background with a colour bar along the
 *		bottom strip, which is below the area a picture is
 *		scaled into.
 *
 *---------------------------------------------------------------*/

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultBackground is a dark blue.
const DefaultBackground uint16 = 0x29EE

const (
	ColorBarY      = 480
	ColorBarHeight = 16
	ColorBarWidth  = 10
	ColorBarCount  = ImageWidth / ColorBarWidth
)

// PictureArea is where a picture is scaled to, above the colour bar.
var PictureArea = image.Rect(0, 0, ImageWidth, ColorBarY)

// SMPTE order.
var ColorBarColors = [8]uint16{
	0xFFFF, // white
	0xFFE0, // yellow
	0x07FF, // cyan
	0x07E0, // green
	0xF81F, // magenta
	0xF800, // red
	0x001F, // blue
	0x0000, // black
}

// GenerateBaseImage returns a PD120 canvas filled with the background and,
// if enabled, the colour bar.
func GenerateBaseImage(cfg ImageConfig) *Canvas565 {
	var c = NewPD120Canvas()
	c.Fill(cfg.Background)

	if cfg.ColorBar {
		DrawColorBar(c)
	}

	return c
}

// DrawColorBar paints ColorBarCount bars cycling through ColorBarColors.
func DrawColorBar(c *Canvas565) {
	for i := range ColorBarCount {
		var x = i * ColorBarWidth
		c.FillRect(image.Rect(x, ColorBarY, x+ColorBarWidth, ColorBarY+ColorBarHeight),
			ColorBarColors[i%len(ColorBarColors)])
	}
}

var overlayFace = basicfont.Face7x13

/*-------------------------------------------------------------------
 *
 * Name:        DrawOverlayText
 *
 * Purpose:    	Write a line of text with a one pixel outline.
 *
 * Inputs:	dst	- Image to draw on.  Anything outside is clipped.
 *		text	- Printable ASCII.
 *		x, y	- Left edge and baseline.
 *		scale	- Integer magnification of the 7x13 font.
 *		fg	- Text colour.
 *		outline	- Drawn offset by one pixel in all 8 directions
 *			  underneath the text.
 *
 *--------------------------------------------------------------------*/

func DrawOverlayText(dst draw.Image, text string, x, y, scale int, fg, outline color.Color) {
	if text == "" {
		return
	}

	if scale < 1 {
		scale = 1
	}

	var metrics = overlayFace.Metrics()
	var ascent = metrics.Ascent.Ceil()
	var w = font.MeasureString(overlayFace, text).Ceil()
	var h = metrics.Height.Ceil()

	var mask = image.NewAlpha(image.Rect(0, 0, w, h))

	var d = font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: overlayFace,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	var big = image.NewAlpha(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	var r = big.Bounds().Add(image.Pt(x, y-ascent*scale))

	var outlineSrc = image.NewUniform(outline)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			draw.DrawMask(dst, r.Add(image.Pt(dx, dy)), outlineSrc, image.Point{}, big, image.Point{}, draw.Over)
		}
	}

	draw.DrawMask(dst, r, image.NewUniform(fg), image.Point{}, big, image.Point{}, draw.Over)
}
