package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Send a complete PD120 image.
 *
 * Description:	Calibration header, then for each line pair:
 *
 *			1200 Hz for SyncPulseDuration
 *			1500 Hz for PorchDuration
 *			Y of the odd row
 *			R-Y averaged over both rows
 *			B-Y averaged over both rows
 *			Y of the even row
 *
 *		and finally silence.  Once started it runs to the end;
 *		there is no way to abort part way through a line.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var ErrMalformedGeometry = errors.New("image geometry does not match PD120")

// Encoder drives a Transmitter through the PD120 protocol.
type Encoder struct {
	tx      Transmitter
	log     *log.Logger
	metrics *Metrics
}

// NewEncoder returns an encoder for tx.  logger and metrics may be nil.
func NewEncoder(tx Transmitter, logger *log.Logger, metrics *Metrics) *Encoder {
	if logger == nil {
		logger = log.Default()
	}

	return &Encoder{tx: tx, log: logger, metrics: metrics}
}

// CheckGeometry rejects sources that are not 640x496.
func CheckGeometry(src PixelSource) error {
	if src.Width() != ImageWidth || src.Height() != ImageHeight {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrMalformedGeometry, src.Width(), src.Height(), ImageWidth, ImageHeight)
	}

	return nil
}

// TransmitImage sends the calibration header followed by the image and
// blocks until the last pixel has been sent.  Nothing is sent if the
// geometry is wrong.
func (e *Encoder) TransmitImage(src PixelSource) error {
	var err = CheckGeometry(src)
	if err != nil {
		return err
	}

	var start = time.Now()

	e.metrics.transmitting(true)
	defer e.metrics.transmitting(false)

	e.log.Info("sending calibration header", "mode", ModeName, "vis", VISCodePD120)
	e.SendHeader()

	e.log.Info("sending image data", "pairs", src.Height()/2)
	e.sendScanLines(src)

	e.metrics.imageSent()
	e.log.Info("image sent", "elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}

// SendHeader plays the PD120 calibration header.
func (e *Encoder) SendHeader() {
	SendPulses(e.tx, e.tx, PD120Header)
}

func (e *Encoder) sendScanLines(src PixelSource) {
	var timer PeriodicTimer = e.tx
	if e.metrics != nil {
		timer = e.metrics.InstrumentTimer(timer)
	}

	var lt = NewLineTransmitter(src, e.tx, timer)
	lt.observe = e.metrics.segmentSent

	var numPairs = src.Height() / 2

	for pair := range numPairs {
		var oddLine = pair * 2
		var evenLine = oddLine + 1

		e.tx.SetFrequency(FreqSync)
		e.tx.Wait(SyncPulseDuration)

		e.tx.SetFrequency(FreqPorch)
		e.tx.Wait(PorchDuration)

		lt.TransmitLuminance(oddLine)
		lt.TransmitRedDiff(oddLine, evenLine)
		lt.TransmitBlueDiff(oddLine, evenLine)
		lt.TransmitLuminance(evenLine)

		if (pair+1)%62 == 0 {
			e.log.Debug("progress", "pair", pair+1, "of", numPairs)
		}
	}

	e.tx.Stop()
}
