package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Calibration header and VIS code.
 *
 * Description:	Sent once before the image.  Every pulse is held by a
 *		plain timed delay, not by the pixel clock.
 *
 *		    1900 Hz  300 ms	leader
 *		    1200 Hz   10 ms	break
 *		    1900 Hz  300 ms	leader
 *		    1200 Hz   30 ms	start bit
 *		    7 data bits, LSB first, 30 ms each
 *		    even parity bit, 30 ms
 *		    1200 Hz   30 ms	stop bit
 *
 *		A data or parity "1" is 1100 Hz, a "0" is 1300 Hz.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"time"
)

const (
	leaderDuration = 300 * time.Millisecond
	breakDuration  = 10 * time.Millisecond
	visBitDuration = 30 * time.Millisecond

	visDataBits = 7
)

// TonePulse is a frequency held for a fixed time.
type TonePulse struct {
	Freq     uint32
	Duration time.Duration
}

var ErrBadVIS = errors.New("malformed VIS sequence")

// VISBits returns the 7 data bits of code, LSB first, followed by the
// even parity bit.
func VISBits(code int) [visDataBits + 1]bool {
	var bits [visDataBits + 1]bool

	var parity = false

	for i := range visDataBits {
		bits[i] = (code>>i)&1 == 1
		parity = parity != bits[i]
	}

	bits[visDataBits] = parity

	return bits
}

func visBitFreq(bit bool) uint32 {
	if bit {
		return FreqVISOne
	}

	return FreqVISZero
}

// CalibrationHeader lists the pulses announcing the given VIS code.
func CalibrationHeader(code int) []TonePulse {
	var pulses = []TonePulse{
		{FreqLeader, leaderDuration},
		{FreqBreak, breakDuration},
		{FreqLeader, leaderDuration},
		{FreqBreak, visBitDuration}, // start bit
	}

	for _, bit := range VISBits(code) {
		pulses = append(pulses, TonePulse{visBitFreq(bit), visBitDuration})
	}

	return append(pulses, TonePulse{FreqBreak, visBitDuration}) // stop bit
}

// PD120Header is the header for this mode, computed once.
var PD120Header = CalibrationHeader(VISCodePD120)

// HeaderDuration is the total length of a header.
func HeaderDuration(pulses []TonePulse) time.Duration {
	var total time.Duration
	for _, p := range pulses {
		total += p.Duration
	}

	return total
}

// SendPulses plays each pulse in turn.
func SendPulses(tone ToneGenerator, delay Delay, pulses []TonePulse) {
	for _, p := range pulses {
		tone.SetFrequency(p.Freq)
		delay.Wait(p.Duration)
	}
}

// DecodeVIS reads back the code from the frequencies of the data and parity
// bits (8 values, LSB first).  Parity must be even.
func DecodeVIS(freqs []uint32) (int, error) {
	if len(freqs) != visDataBits+1 {
		return 0, fmt.Errorf("%w: want %d bits, got %d", ErrBadVIS, visDataBits+1, len(freqs))
	}

	var code = 0
	var ones = 0

	for i, f := range freqs {
		var bit int

		switch f {
		case FreqVISOne:
			bit = 1
		case FreqVISZero:
			bit = 0
		default:
			return 0, fmt.Errorf("%w: bit %d has frequency %d Hz", ErrBadVIS, i, f)
		}

		ones += bit

		if i < visDataBits {
			code |= bit << i
		}
	}

	if ones%2 != 0 {
		return 0, fmt.Errorf("%w: parity error", ErrBadVIS)
	}

	return code, nil
}

// DecodeHeader checks the full pulse train and returns the VIS code.
func DecodeHeader(pulses []TonePulse) (int, error) {
	if len(pulses) != len(PD120Header) {
		return 0, fmt.Errorf("%w: want %d pulses, got %d", ErrBadVIS, len(PD120Header), len(pulses))
	}

	for i := range 4 {
		if pulses[i] != PD120Header[i] {
			return 0, fmt.Errorf("%w: pulse %d is %v", ErrBadVIS, i, pulses[i])
		}
	}

	var last = pulses[len(pulses)-1]
	if last.Freq != FreqBreak {
		return 0, fmt.Errorf("%w: missing stop bit", ErrBadVIS)
	}

	var freqs = make([]uint32, 0, visDataBits+1)
	for _, p := range pulses[4 : len(pulses)-1] {
		freqs = append(freqs, p.Freq)
	}

	return DecodeVIS(freqs)
}
