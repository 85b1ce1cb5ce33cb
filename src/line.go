package sstv

// LineTransmitter sends one scan segment at a time, pixel clocked by
// the PeriodicTimer.  Calls must not overlap.
type LineTransmitter struct {
	src       PixelSource
	state     *transmissionState
	scheduler *ScanScheduler
	timer     PeriodicTimer
	tick      func()

	// observe is called after each segment; nil is fine.
	observe func(ScanSegment)
}

func NewLineTransmitter(src PixelSource, tone ToneGenerator, timer PeriodicTimer) *LineTransmitter {
	var state = newTransmissionState()
	var sched = newScanScheduler(state, tone, timer)

	return &LineTransmitter{
		src:       src,
		state:     state,
		scheduler: sched,
		timer:     timer,
		tick:      sched.Tick,
	}
}

// TransmitLuminance sends the Y scan of one row.
func (lt *LineTransmitter) TransmitLuminance(row int) {
	lt.transmit(LuminanceSegment(row))
}

// TransmitRedDiff sends the R-Y scan averaged over a row pair.
func (lt *LineTransmitter) TransmitRedDiff(oddRow, evenRow int) {
	lt.transmit(RedDiffSegment(oddRow, evenRow))
}

// TransmitBlueDiff sends the B-Y scan averaged over a row pair.
func (lt *LineTransmitter) TransmitBlueDiff(oddRow, evenRow int) {
	lt.transmit(BlueDiffSegment(oddRow, evenRow))
}

// transmit returns once all pixels of seg have been sent, i.e. after
// width * PixelDuration.
func (lt *LineTransmitter) transmit(seg ScanSegment) {
	lt.state.reset(lt.src, seg)
	lt.timer.Arm(PixelDuration, lt.tick)

	<-lt.state.done

	if lt.observe != nil {
		lt.observe(seg)
	}
}
