package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Choose where the tones go.
 *
 * Description:	wav	- rendered into a .WAV file, named from a
 *			  strftime pattern so each image gets its own.
 *
 *		audio	- rendered and played on the default sound
 *			  card.  The card's sample clock paces it.
 *
 *		pwm	- square wave from a hardware PWM channel,
 *			  clocked by the wall clock.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

var ErrUnknownOutput = errors.New("unknown output mode")

// Output is an opened Transmitter.  Close must be called after each image;
// for wav it completes the file.
type Output struct {
	Transmitter

	Mode string
	Path string // wav only

	close func() error
}

func (o *Output) Close() error {
	return o.close()
}

// OutputPath expands a strftime pattern such as "sstv-%Y%m%d-%H%M%S.wav".
func OutputPath(pattern string, t time.Time) (string, error) {
	var s, err = strftime.Format(pattern, t)
	if err != nil {
		return "", fmt.Errorf("bad file name pattern %q: %w", pattern, err)
	}

	return s, nil
}

// OpenOutput opens the configured output for one transmission.
func OpenOutput(cfg *Config, now time.Time) (*Output, error) {
	switch cfg.Output.Mode {
	case OutputWAV:
		var path, err = OutputPath(cfg.Output.WAVPattern, now)
		if err != nil {
			return nil, err
		}

		return openWAVOutput(path, cfg.Audio)

	case OutputAudio:
		var sink, err = OpenPortAudio(cfg.Audio.SampleRate, cfg.Audio.FramesPerBuffer)
		if err != nil {
			return nil, err
		}

		return synthOutput(OutputAudio, "", sink, cfg.Audio)

	case OutputPWM:
		var tone, err = OpenPWM(cfg.PWM.Root, cfg.PWM.Chip, cfg.PWM.Channel, cfg.PWM.DutyPercent)
		if err != nil {
			return nil, err
		}

		var tx = pwmTransmitter{PWMTone: tone, RealtimeClock: NewRealtimeClock()}

		return &Output{Transmitter: tx, Mode: OutputPWM, close: tx.Close}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, cfg.Output.Mode)
	}
}

func openWAVOutput(path string, audio AudioConfig) (*Output, error) {
	var ww, err = CreateWAV(path, audio.SampleRate, audio.BitsPerSample)
	if err != nil {
		return nil, err
	}

	return synthOutput(OutputWAV, path, ww, audio)
}

func synthOutput(mode string, path string, sink SampleSink, audio AudioConfig) (*Output, error) {
	var synth, err = NewSynth(sink, audio.SampleRate, audio.Amplitude)
	if err != nil {
		return nil, errors.Join(err, sink.Close())
	}

	return &Output{Transmitter: synth, Mode: mode, Path: path, close: synth.Close}, nil
}
