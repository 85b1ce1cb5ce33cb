package sstv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func zeroCrossings(samples []int16) int {
	var n = 0

	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			n++
		}
	}

	return n
}

func Test_Synth_Tone(t *testing.T) {
	var sink = new(memorySink)
	var s, err = NewSynth(sink, 8000, 100)
	require.NoError(t, err)

	s.SetFrequency(1000)
	s.Wait(time.Second)
	require.NoError(t, s.Flush())

	require.Len(t, sink.samples, 8000)

	// Two crossings per cycle.
	assert.InDelta(t, 2000, zeroCrossings(sink.samples), 2)

	var peak int16
	for _, v := range sink.samples {
		peak = max(peak, v)
	}

	assert.Greater(t, peak, int16(30000))
}

func Test_Synth_Silence(t *testing.T) {
	var sink = new(memorySink)
	var s, err = NewSynth(sink, 8000, 50)
	require.NoError(t, err)

	s.Wait(10 * time.Millisecond)
	s.SetFrequency(1500)
	s.Wait(10 * time.Millisecond)
	s.Stop()
	s.Wait(10 * time.Millisecond)
	require.NoError(t, s.Close())

	require.Len(t, sink.samples, 240)

	for _, v := range sink.samples[:80] {
		assert.Zero(t, v)
	}

	for _, v := range sink.samples[160:] {
		assert.Zero(t, v)
	}

	assert.NotZero(t, zeroCrossings(sink.samples[80:160]))
	assert.True(t, sink.closed)
}

func Test_Synth_Arm(t *testing.T) {
	var sink = new(memorySink)
	var s, err = NewSynth(sink, 44100, 50)
	require.NoError(t, err)

	var calls = 0
	var done = make(chan struct{})

	s.Arm(PixelDuration, func() {
		calls++
		if calls == ImageWidth+1 {
			s.Disarm()
			close(done)
		}
	})

	<-done
	require.NoError(t, s.Flush())

	assert.Equal(t, ImageWidth+1, calls)
	assert.Equal(t, ScanDuration, s.Elapsed())
	// 121.6 ms at 44.1 kHz is 5362.56 samples.
	assert.Equal(t, int64(5362), s.Samples())
}

func Test_Synth_NoDrift(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var rate = rapid.SampledFrom([]int{8000, 11025, 22050, 44100, 48000}).Draw(t, "rate")
		var steps = rapid.SliceOfN(rapid.IntRange(1, 50000), 1, 50).Draw(t, "steps")

		var s, err = NewSynth(nil, rate, 50)
		if err != nil {
			t.Fatal(err)
		}

		var total time.Duration

		for _, us := range steps {
			var d = time.Duration(us) * time.Microsecond
			s.Wait(d)
			total += d
		}

		var want = int64(total) * int64(rate) / int64(time.Second)
		if s.Samples() != want {
			t.Fatalf("rendered %d samples for %s at %d Hz, want %d", s.Samples(), total, rate, want)
		}
	})
}

func Test_NewSynth_Errors(t *testing.T) {
	var _, err = NewSynth(nil, 8000, 101)
	require.ErrorIs(t, err, ErrBadAmplitude)

	_, err = NewSynth(nil, 0, 50)
	require.Error(t, err)
}

func Test_SamplesIn(t *testing.T) {
	assert.Equal(t, int64(5362), samplesIn(ScanDuration, 44100))
	assert.Equal(t, int64(0), samplesIn(0, 48000))
	// Would overflow as d * rate in 64 bits.
	assert.Equal(t, int64(24386503), samplesIn(127013040*time.Microsecond, 192000))
}
