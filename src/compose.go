package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Build the frame to send from a picture file.
 *
 * Description:	The picture is scaled to fill PictureArea, the
 *		colour bar stays below it, then the overlays are
 *		drawn on top.  If the picture can't be read the base
 *		image is sent instead so a transmission still happens.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// LoadImage decodes any of png, jpeg, gif, bmp, tiff, webp.
func LoadImage(path string) (image.Image, string, error) {
	var f, err = os.Open(path) //nolint:gosec // user supplied image
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var img, format, decodeErr = image.Decode(f)
	if decodeErr != nil {
		return nil, "", fmt.Errorf("could not decode %s: %w", path, decodeErr)
	}

	return img, format, nil
}

// ComposeFrame draws pic (may be nil) and the overlays onto a fresh base image.
func ComposeFrame(pic image.Image, cfg *Config) *Canvas565 {
	var frame = GenerateBaseImage(cfg.Image)

	if pic != nil {
		draw.CatmullRom.Scale(frame, PictureArea, pic, pic.Bounds(), draw.Src, nil)
	}

	DrawOverlays(frame, cfg)

	return frame
}

// DrawOverlays writes the top and bottom text.  The top line defaults to
// the callsign.
func DrawOverlays(frame draw.Image, cfg *Config) {
	var fg = Color565(cfg.Overlay.Color)
	var outline = Color565(cfg.Overlay.Outline)

	var top = cfg.Overlay.Top
	if top.Text == "" {
		top.Text = cfg.Callsign
	}

	for _, t := range []TextConfig{top, cfg.Overlay.Bottom} {
		DrawOverlayText(frame, t.Text, t.X, t.Y, t.Scale, fg, outline)
	}
}

// LoadFrame reads path and composes a frame from it.  Failures are logged
// and the base image with overlays is returned.
func LoadFrame(path string, cfg *Config, logger *log.Logger) *Canvas565 {
	if path == "" {
		return ComposeFrame(nil, cfg)
	}

	var pic, format, err = LoadImage(path)
	if err != nil {
		logger.Warn("image not available, sending base image", "path", path, "err", err)
		return ComposeFrame(nil, cfg)
	}

	logger.Debug("loaded image", "path", path, "format", format, "size", pic.Bounds().Size())

	return ComposeFrame(pic, cfg)
}
