package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	One complete over: key up, send the image, identify,
 *		key down.
 *
 * Description:	Sequence for each image:
 *
 *			PTT on
 *			txdelay of silence
 *			calibration header and image
 *			callsign in Morse, if enabled
 *			txtail of silence
 *			output closed, which drains the audio
 *			PTT off
 *
 *		Sends are serialized; a second caller waits.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Station holds what stays the same from one transmission to the next.
type Station struct {
	mu sync.Mutex

	cfg     *Config
	ptt     PTT
	log     *log.Logger
	metrics *Metrics
	txlog   *TxLog

	// Replaceable for testing.
	openOutput func(cfg *Config, now time.Time) (*Output, error)
	now        func() time.Time
}

// NewStation takes ownership of ptt.  metrics and txlog may be nil.
func NewStation(cfg *Config, ptt PTT, logger *log.Logger, metrics *Metrics, txlog *TxLog) *Station {
	if logger == nil {
		logger = log.Default()
	}

	if ptt == nil {
		ptt = nullPTT{}
	}

	return &Station{
		cfg:        cfg,
		ptt:        ptt,
		log:        logger,
		metrics:    metrics,
		txlog:      txlog,
		openOutput: OpenOutput,
		now:        time.Now,
	}
}

// AirTime is how long the radio is keyed for one image.
func (s *Station) AirTime() time.Duration {
	var d = s.cfg.PTT.TXDelay + HeaderDuration(PD120Header) + ImageDuration(ImageHeight) + s.cfg.PTT.TXTail

	if s.cfg.Ident.MorseWPM > 0 {
		d += MorseDuration(s.cfg.Callsign, s.cfg.Ident.MorseWPM)
	}

	return d
}

// Send transmits frame.  source is only used for logging.
func (s *Station) Send(frame PixelSource, source string) error {
	var err = CheckGeometry(frame)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var start = s.now()

	var out, openErr = s.openOutput(s.cfg, start)
	if openErr != nil {
		return fmt.Errorf("could not open %s output: %w", s.cfg.Output.Mode, openErr)
	}

	err = s.key(true)
	if err != nil {
		return errors.Join(err, out.Close())
	}

	s.log.Info("transmitting", "source", source, "output", out.Mode, "path", out.Path, "airtime", s.AirTime().Round(time.Second))

	out.Wait(s.cfg.PTT.TXDelay)

	err = NewEncoder(out, s.log, s.metrics).TransmitImage(frame)

	if err == nil && s.cfg.Ident.MorseWPM > 0 {
		s.log.Debug("sending ident", "callsign", s.cfg.Callsign, "wpm", s.cfg.Ident.MorseWPM)
		SendMorse(out, out, s.cfg.Callsign, s.cfg.Ident.MorseWPM, uint32(s.cfg.Ident.ToneHz)) //nolint:gosec
	}

	out.Wait(s.cfg.PTT.TXTail)

	err = errors.Join(err, out.Close(), s.key(false))
	if err != nil {
		return err
	}

	var logErr = s.txlog.Write(TxRecord{
		Time:     start,
		Source:   source,
		Width:    frame.Width(),
		Height:   frame.Height(),
		Duration: s.AirTime(),
		Output:   out.Mode,
		PTT:      s.cfg.PTT.Method,
	})
	if logErr != nil {
		s.log.Warn("transmission log", "err", logErr)
	}

	return nil
}

func (s *Station) key(on bool) error {
	var err = s.ptt.Set(on)
	if err != nil {
		s.metrics.pttError()

		if on {
			return fmt.Errorf("PTT on: %w", err)
		}

		return fmt.Errorf("PTT off: %w", err)
	}

	s.log.Debug("PTT", "on", on)

	return nil
}

// Unkey drops PTT without waiting for a transmission in progress.  Used
// when the process is being killed.
func (s *Station) Unkey() error {
	return s.ptt.Set(false)
}

// Close releases the PTT line.
func (s *Station) Close() error {
	return errors.Join(s.ptt.Set(false), s.ptt.Close())
}
