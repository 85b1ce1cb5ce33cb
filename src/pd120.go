package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Fixed parameters of the PD120 SSTV mode.
 *
 * Description:	PD120 sends two image rows per "line pair":
 *
 *			sync | porch | Y(odd) | R-Y | B-Y | Y(even)
 *
 *		The colour difference segments carry the average of
 *		both rows.  None of this is configurable at run time.
 *
 *---------------------------------------------------------------*/

import "time"

// Image geometry.
const (
	ImageWidth  = 640
	ImageHeight = 496 // 248 line pairs
)

// Segment timing.
const (
	SyncPulseDuration = 20000 * time.Microsecond
	PorchDuration     = 2080 * time.Microsecond
	ScanDuration      = 121600 * time.Microsecond

	// 190 us.  Every pixel callback must finish well inside this.
	PixelDuration = ScanDuration / ImageWidth

	LinePairDuration = SyncPulseDuration + PorchDuration + 4*ScanDuration
)

// Tone frequencies in Hz.
const (
	FreqSync   = 1200
	FreqPorch  = 1500
	FreqBlack  = 1500
	FreqWhite  = 2300
	FreqLeader = 1900
	FreqBreak  = 1200

	FreqVISOne  = 1100
	FreqVISZero = 1300
)

// VISCodePD120 identifies the mode to a receiver.
const VISCodePD120 = 95

// ModeName is used in logs and the transmission log.
const ModeName = "PD120"

// ImageDuration returns the nominal time to send the scan lines of an
// image with the given number of rows, calibration header excluded.
func ImageDuration(height int) time.Duration {
	return time.Duration(height/2) * LinePairDuration
}
