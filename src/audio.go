package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Play rendered audio on the default sound card.
 *
 * Description:	Uses PortAudio in blocking mode.  Stream.Write
 *		returns when the device has room again, so the synth
 *		is paced by the sound card clock and the timing of
 *		the transmission is as good as the card's.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSink is a SampleSink playing to the default output device.
type PortAudioSink struct {
	stream *portaudio.Stream
	buf    []int16
	n      int
}

func OpenPortAudio(sampleRate int, framesPerBuffer int) (*PortAudioSink, error) {
	var err = portaudio.Initialize()
	if err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	var sink = &PortAudioSink{buf: make([]int16, framesPerBuffer)}

	sink.stream, err = portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(sink.buf), sink.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("could not open audio device for output: %w", err)
	}

	err = sink.stream.Start()
	if err != nil {
		sink.stream.Close()
		portaudio.Terminate()

		return nil, fmt.Errorf("could not start audio stream: %w", err)
	}

	return sink, nil
}

func (p *PortAudioSink) WriteSamples(samples []int16) error {
	for len(samples) > 0 {
		var c = copy(p.buf[p.n:], samples)
		p.n += c
		samples = samples[c:]

		if p.n == len(p.buf) {
			var err = p.stream.Write()
			if err != nil {
				return fmt.Errorf("audio write: %w", err)
			}

			p.n = 0
		}
	}

	return nil
}

// Close pads the last buffer with silence, drains and releases the device.
func (p *PortAudioSink) Close() error {
	var err error

	if p.n > 0 {
		clear(p.buf[p.n:])
		err = p.stream.Write()
		p.n = 0
	}

	return errors.Join(err, p.stream.Stop(), p.stream.Close(), portaudio.Terminate())
}
