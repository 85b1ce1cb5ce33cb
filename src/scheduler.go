package sstv

import "sync/atomic"

/*------------------------------------------------------------------
 *
 * Purpose:   	Per pixel tone scheduling for one scan segment.
 *
 * Description:	Tick is the callback handed to the PeriodicTimer.  It
 *		runs in the timer's context, not the encoder's, and
 *		is on the critical timing path:
 *
 *		  - worst case execution must stay well below
 *		    PixelDuration (190 us).  A late tick shifts the
 *		    rest of the line and a receiver shows it as skew.
 *		    Nothing detects that at run time.
 *		  - no allocation, no locks, no blocking.  The
 *		    completion send is on a buffered channel with
 *		    room for exactly one value.
 *
 *		Tick k (k = 0 at arm time) emits pixel k.  Tick
 *		number width finds every pixel has had its full slot,
 *		disarms the timer and signals completion.  So a
 *		segment lasts width * PixelDuration, exactly.
 *
 *---------------------------------------------------------------*/

// transmissionState is shared between the encoder goroutine and the
// timer callback.  The encoder writes segment and resets the counters
// before arming; afterwards only Tick mutates them.
type transmissionState struct {
	src     PixelSource
	segment ScanSegment
	width   int32

	pixel    atomic.Int32
	finished atomic.Bool
	done     chan struct{}
}

func newTransmissionState() *transmissionState {
	return &transmissionState{done: make(chan struct{}, 1)}
}

// reset prepares for the next segment.
func (st *transmissionState) reset(src PixelSource, seg ScanSegment) {
	st.src = src
	st.segment = seg
	st.width = int32(src.Width()) //nolint:gosec
	st.pixel.Store(0)
	st.finished.Store(false)

	// Drain a stale completion, if any.
	select {
	case <-st.done:
	default:
	}
}

// ScanScheduler is the pixel clock callback.
type ScanScheduler struct {
	state *transmissionState
	tone  ToneGenerator
	timer PeriodicTimer
}

func newScanScheduler(state *transmissionState, tone ToneGenerator, timer PeriodicTimer) *ScanScheduler {
	return &ScanScheduler{state: state, tone: tone, timer: timer}
}

// Tick handles one invocation of the pixel clock.
func (s *ScanScheduler) Tick() {
	var st = s.state

	if st.finished.Load() {
		return
	}

	var x = st.pixel.Load()
	if x >= st.width {
		s.timer.Disarm()
		st.finished.Store(true)
		st.done <- struct{}{}

		return
	}

	s.tone.SetFrequency(st.segment.Frequency(st.src, int(x)))
	st.pixel.Store(x + 1)
}
