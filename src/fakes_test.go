package sstv

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// solidImage is a single colour.
type solidImage struct {
	w, h    int
	r, g, b uint8
}

func (s solidImage) Width() int  { return s.w }
func (s solidImage) Height() int { return s.h }

func (s solidImage) Pixel(int, int) (uint8, uint8, uint8) { return s.r, s.g, s.b }

// toneEvent is a SetFrequency (Freq > 0) or Stop (Freq == 0) at a virtual time.
type toneEvent struct {
	At   time.Duration
	Freq uint32
}

// virtualTransmitter runs the pixel clock synchronously on a virtual clock
// and records everything sent.
type virtualTransmitter struct {
	now    time.Duration
	events []toneEvent
	ticks  int
	arms   int
	waits  []time.Duration

	stopped bool
}

func (v *virtualTransmitter) SetFrequency(hz uint32) {
	v.events = append(v.events, toneEvent{At: v.now, Freq: hz})
}

func (v *virtualTransmitter) Stop() {
	v.events = append(v.events, toneEvent{At: v.now})
}

func (v *virtualTransmitter) Wait(d time.Duration) {
	v.waits = append(v.waits, d)
	v.now += d
}

func (v *virtualTransmitter) Arm(interval time.Duration, fn func()) {
	v.arms++
	v.stopped = false

	for {
		v.ticks++
		fn()

		if v.stopped {
			return
		}

		v.now += interval
	}
}

func (v *virtualTransmitter) Disarm() {
	v.stopped = true
}

func (v *virtualTransmitter) freqs() []uint32 {
	var out = make([]uint32, len(v.events))
	for i, e := range v.events {
		out[i] = e.Freq
	}

	return out
}

// memorySink keeps samples in memory.
type memorySink struct {
	samples []int16
	closed  bool
}

func (m *memorySink) WriteSamples(s []int16) error {
	m.samples = append(m.samples, s...)
	return nil
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

// recordingPTT remembers every state change.
type recordingPTT struct {
	states []bool
	closed bool
	err    error
}

func (r *recordingPTT) Set(on bool) error {
	if r.err != nil {
		return r.err
	}

	r.states = append(r.states, on)

	return nil
}

func (r *recordingPTT) Close() error {
	r.closed = true
	return nil
}
