package sstv

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainConfig has no overlays.
func plainConfig() *Config {
	var cfg = DefaultConfig()
	cfg.Callsign = ""
	cfg.Overlay.Top.Text = ""
	cfg.Overlay.Bottom.Text = ""

	return cfg
}

func writePNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()

	var img = image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}

	var path = filepath.Join(t.TempDir(), "pic.png")

	var f, err = os.Create(path) //nolint:gosec
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	return path
}

func Test_LoadImage(t *testing.T) {
	var path = writePNG(t, 32, 24, color.RGBA{0, 255, 0, 255})

	var img, format, err = LoadImage(path)
	require.NoError(t, err)

	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
}

func Test_LoadImage_Errors(t *testing.T) {
	var _, _, err = LoadImage(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)

	var junk = filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not a picture"), 0o600))

	_, _, err = LoadImage(junk)
	require.Error(t, err)
}

func Test_ComposeFrame_ScalesIntoPictureArea(t *testing.T) {
	var path = writePNG(t, 64, 48, color.RGBA{255, 0, 0, 255})

	var frame = LoadFrame(path, plainConfig(), testLogger())

	require.NoError(t, CheckGeometry(frame))

	for _, p := range []image.Point{{0, 0}, {320, 240}, {639, 479}} {
		assert.Equal(t, uint16(0xF800), frame.Pix[p.Y*ImageWidth+p.X], "pixel %v", p)
	}

	// The colour bar is untouched.
	assert.Equal(t, uint16(0xFFFF), frame.Pix[ColorBarY*ImageWidth])
	assert.Equal(t, uint16(0xFFE0), frame.Pix[ColorBarY*ImageWidth+10])
}

func Test_LoadFrame_FallsBack(t *testing.T) {
	var cfg = plainConfig()

	var frame = LoadFrame(filepath.Join(t.TempDir(), "camera.jpg"), cfg, testLogger())

	assert.Equal(t, GenerateBaseImage(cfg.Image).Pix, frame.Pix)
}

func Test_ComposeFrame_CallsignOverlay(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.Callsign = "N0CALL"

	var plain = ComposeFrame(nil, plainConfig())
	var withCall = ComposeFrame(nil, cfg)

	assert.NotEqual(t, plain.Pix, withCall.Pix)
	assert.Positive(t, countPixels(withCall, cfg.Overlay.Color))
}
