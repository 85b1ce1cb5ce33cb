package sstv

/*------------------------------------------------------------------
 *
 * Purpose:     Render the tone sequence into audio samples.
 *
 * Description:	Direct digital synthesis: a 32 bit phase accumulator
 *		whose upper 8 bits index a 256 entry sine table.
 *
 *		Synth runs on a virtual clock.  Waiting or a pixel
 *		clock period does not sleep; it writes the number of
 *		samples that period covers at the current frequency.
 *		Sample counts are derived from the total elapsed time,
 *		so rounding never accumulates: a 121.6 ms scan is
 *		always the same number of samples within one.
 *
 *		Synth is a complete Transmitter, so the same encoder
 *		code path produces a .WAV file or feeds a sound card.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

const TICKS_PER_CYCLE = 256.0 * 256.0 * 256.0 * 256.0

const synthBufferSamples = 4096

// SampleSink receives signed 16 bit mono samples.
type SampleSink interface {
	WriteSamples(samples []int16) error
	Close() error
}

// Synth is a Transmitter that renders audio instead of driving hardware.
type Synth struct {
	mu sync.Mutex

	sink       SampleSink
	sampleRate int
	sineTable  [256]int16

	// Written by SetFrequency/Stop from either goroutine, read when rendering.
	change atomic.Uint32
	silent atomic.Bool

	phase   uint32
	elapsed time.Duration
	written int64
	buf     []int16
	err     error

	armed atomic.Pointer[armToken]
	idle  sync.WaitGroup
}

type armToken struct {
	stopped atomic.Bool
}

var ErrBadAmplitude = errors.New("amplitude must be in range 0 to 100")

// NewSynth renders at sampleRate with amplitude on a scale of 0 .. 100,
// 100 being full 16 bit range.
func NewSynth(sink SampleSink, sampleRate int, amplitude int) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	if amplitude < 0 || amplitude > 100 {
		return nil, fmt.Errorf("%w: %d", ErrBadAmplitude, amplitude)
	}

	var s = &Synth{
		sink:       sink,
		sampleRate: sampleRate,
		buf:        make([]int16, 0, synthBufferSamples),
	}

	for j := range s.sineTable {
		var a = (float64(j) / 256.0) * (2 * math.Pi)
		s.sineTable[j] = int16(math.Sin(a) * 32767.0 * float64(amplitude) / 100.0)
	}

	s.silent.Store(true)

	return s, nil
}

func (s *Synth) SampleRate() int { return s.sampleRate }

// SetFrequency takes effect at the current virtual time.
func (s *Synth) SetFrequency(hz uint32) {
	s.change.Store(uint32((float64(hz) * TICKS_PER_CYCLE / float64(s.sampleRate)) + 0.5))
	s.silent.Store(false)
}

func (s *Synth) Stop() {
	s.silent.Store(true)
}

// Wait advances the virtual clock by d.
func (s *Synth) Wait(d time.Duration) {
	s.mu.Lock()
	s.advance(d)
	s.mu.Unlock()
}

// Arm starts the pixel clock.  fn is called straight away and again each
// time interval of audio has been rendered.  Calls to fn and rendering
// are done under the lock, so nothing else renders until the clock is
// disarmed.
func (s *Synth) Arm(interval time.Duration, fn func()) {
	var tok = new(armToken)
	s.armed.Store(tok)

	s.idle.Add(1)

	go func() {
		defer s.idle.Done()

		for {
			s.mu.Lock()
			fn()

			if tok.stopped.Load() {
				s.mu.Unlock()
				return
			}

			s.advance(interval)
			s.mu.Unlock()
		}
	}()
}

// Disarm is safe to call from inside the armed callback.
func (s *Synth) Disarm() {
	var tok = s.armed.Load()
	if tok != nil {
		tok.stopped.Store(true)
	}
}

// Elapsed is the virtual time rendered so far.
func (s *Synth) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.elapsed
}

// Samples is the number of samples rendered so far.
func (s *Synth) Samples() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.written
}

// advance must be called with mu held.
func (s *Synth) advance(d time.Duration) {
	s.elapsed += d

	var target = samplesIn(s.elapsed, s.sampleRate)
	var silent = s.silent.Load()
	var change = s.change.Load()

	for ; s.written < target; s.written++ {
		var sam int16

		if silent {
			// Avoid abrupt change when it starts up again.
			s.phase = 0
		} else {
			s.phase += change
			sam = s.sineTable[(s.phase>>24)&0xff]
		}

		s.buf = append(s.buf, sam)
		if len(s.buf) == cap(s.buf) {
			s.flushBuffer()
		}
	}
}

// samplesIn is floor(d * rate) without overflowing for long durations.
func samplesIn(d time.Duration, rate int) int64 {
	var secs = int64(d / time.Second)
	var frac = int64(d % time.Second)

	return secs*int64(rate) + frac*int64(rate)/int64(time.Second)
}

func (s *Synth) flushBuffer() {
	if len(s.buf) == 0 {
		return
	}

	if s.err == nil && s.sink != nil {
		s.err = s.sink.WriteSamples(s.buf)
	}

	s.buf = s.buf[:0]
}

// Flush pushes buffered samples to the sink and reports the first write
// error seen since the synth was created.
func (s *Synth) Flush() error {
	s.idle.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushBuffer()

	return s.err
}

// Close flushes and closes the sink.
func (s *Synth) Close() error {
	var err = s.Flush()

	if s.sink != nil {
		err = errors.Join(err, s.sink.Close())
	}

	return err
}
