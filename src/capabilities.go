package sstv

import "time"

// PixelSource is the image being sent.  It must not change while a
// transmission is in progress.
type PixelSource interface {
	Width() int
	Height() int
	// Pixel returns 8 bit components.
	Pixel(x, y int) (r, g, b uint8)
}

// ToneGenerator produces a continuous tone at the last frequency written.
type ToneGenerator interface {
	SetFrequency(hz uint32)
	// Stop silences the output until the next SetFrequency.
	Stop()
}

// PeriodicTimer calls fn once when armed and then every interval until
// disarmed.  At most one call of fn is in flight at a time, and Disarm may
// be called from inside fn.
type PeriodicTimer interface {
	Arm(interval time.Duration, fn func())
	Disarm()
}

// Delay holds the current state for at least d.
type Delay interface {
	Wait(d time.Duration)
}

// Transmitter bundles everything the encoder drives.
type Transmitter interface {
	ToneGenerator
	PeriodicTimer
	Delay
}
