package sstv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventsPerPair = 2 + 4*ImageWidth

func encode(t *testing.T, src PixelSource, metrics *Metrics) *virtualTransmitter {
	t.Helper()

	var vt = new(virtualTransmitter)

	var err = NewEncoder(vt, testLogger(), metrics).TransmitImage(src)
	require.NoError(t, err)

	return vt
}

func Test_TransmitImage_Structure(t *testing.T) {
	var vt = encode(t, solidImage{w: ImageWidth, h: ImageHeight}, nil)

	var numHeader = len(PD120Header)

	require.Len(t, vt.events, numHeader+ImageHeight/2*eventsPerPair+1)

	for i, p := range PD120Header {
		assert.Equal(t, p.Freq, vt.events[i].Freq)
	}

	// Black: Y at the bottom of the band, no colour.
	for pair := range ImageHeight / 2 {
		var base = numHeader + pair*eventsPerPair
		var line = vt.events[base : base+eventsPerPair]

		require.Equal(t, uint32(FreqSync), line[0].Freq, "pair %d", pair)
		require.Equal(t, uint32(FreqPorch), line[1].Freq, "pair %d", pair)
		assert.Equal(t, SyncPulseDuration, line[1].At-line[0].At)
		assert.Equal(t, PorchDuration, line[2].At-line[1].At)

		var scans = line[2:]
		for i, e := range scans {
			var want uint32 = 1500
			if i >= ImageWidth && i < 3*ImageWidth {
				want = 1901
			}

			if e.Freq != want {
				t.Fatalf("pair %d position %d: got %d Hz, want %d", pair, i, e.Freq, want)
			}
		}

		if pair < ImageHeight/2-1 {
			var next = vt.events[base+eventsPerPair]
			assert.Equal(t, LinePairDuration, next.At-line[0].At)
		}
	}

	// Silence at the end.
	assert.Equal(t, toneEvent{At: vt.now, Freq: 0}, vt.events[len(vt.events)-1])
	assert.Equal(t, HeaderDuration(PD120Header)+ImageDuration(ImageHeight), vt.now)
	assert.Equal(t, ImageHeight/2*4, vt.arms)
}

func Test_TransmitImage_White(t *testing.T) {
	var vt = encode(t, solidImage{w: ImageWidth, h: ImageHeight, r: 255, g: 255, b: 255}, nil)

	var first = len(PD120Header) + 2
	var y = vt.events[first : first+ImageWidth]
	var ry = vt.events[first+ImageWidth : first+2*ImageWidth]

	for i := range ImageWidth {
		assert.Equal(t, uint32(2300), y[i].Freq)
		assert.Equal(t, uint32(1901), ry[i].Freq)
	}
}

func Test_TransmitImage_Deterministic(t *testing.T) {
	var frame = GenerateBaseImage(ImageConfig{Background: DefaultBackground, ColorBar: true})

	var a = encode(t, frame, nil)
	var b = encode(t, frame, nil)

	assert.Equal(t, a.events, b.events)
}

func Test_TransmitImage_BadGeometry(t *testing.T) {
	for _, src := range []PixelSource{
		solidImage{w: 320, h: 256},
		solidImage{w: ImageWidth, h: ImageHeight - 1},
		solidImage{w: ImageWidth + 1, h: ImageHeight},
	} {
		var vt = new(virtualTransmitter)

		var err = NewEncoder(vt, nil, nil).TransmitImage(src)

		require.ErrorIs(t, err, ErrMalformedGeometry)
		assert.Empty(t, vt.events)
		assert.Zero(t, vt.ticks)
	}
}

func Test_TransmitImage_Synth(t *testing.T) {
	var sink = new(memorySink)
	var synth, err = NewSynth(sink, 8000, 50)
	require.NoError(t, err)

	err = NewEncoder(synth, testLogger(), nil).TransmitImage(NewPD120Canvas())
	require.NoError(t, err)
	require.NoError(t, synth.Close())

	var total = HeaderDuration(PD120Header) + ImageDuration(ImageHeight)
	assert.Equal(t, total, synth.Elapsed())
	assert.Equal(t, int64(total)*8000/int64(time.Second), int64(len(sink.samples)))
	assert.True(t, sink.closed)
}
