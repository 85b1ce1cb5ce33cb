package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Render a PD120 transmission into a .WAV file.
 *
 * Description:	Handy for testing a decoder without a radio, or for
 *		playing the file out through some other means.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

func GenSSTVMain() {
	var cfg = DefaultConfig()

	var outputFile = pflag.StringP("output-file", "o", "", "Send output to .wav file.")
	var audioSampleRate = pflag.IntP("audio-sample-rate", "r", DEFAULT_SAMPLES_PER_SEC, "Audio sample rate.")
	var amplitude = pflag.IntP("amplitude", "a", cfg.Audio.Amplitude, "Signal amplitude in range of 0 - 100%.")
	var eightBitsPerSample = pflag.BoolP("eight-bps", "8", false, "8 bit audio rather than 16.")
	var imageFile = pflag.StringP("image", "i", "", "Picture to send.  Without one the test card is sent.")
	var topText = pflag.StringP("top-text", "t", "", "Text overlay near the top.  Defaults to the callsign.")
	var bottomText = pflag.StringP("bottom-text", "b", "", "Text overlay near the bottom.")
	var morseWPM = pflag.IntP("morse-wpm", "M", 0, "Identify in Morse at this speed after the image.")
	var callsign = pflag.StringP("callsign", "c", cfg.Callsign, "Station callsign.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug logging.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate audio file for a PD120 SSTV image.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] -o file.wav\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  gen_sstv -o x.wav -i picture.jpg -c N0CALL -M 20\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "    Picture with the callsign in the corner, identified in\n")
		fmt.Fprintf(os.Stderr, "    Morse at 20 WPM.\n")
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *outputFile == "" {
		fmt.Fprintf(os.Stderr, "ERROR: The -o option must be used to specify an output file.\n")
		pflag.Usage()
		os.Exit(1)
	}

	cfg.Callsign = *callsign
	cfg.Audio.SampleRate = *audioSampleRate
	cfg.Audio.Amplitude = *amplitude
	cfg.Overlay.Top.Text = *topText
	cfg.Overlay.Bottom.Text = *bottomText
	cfg.Ident.MorseWPM = *morseWPM

	if *eightBitsPerSample {
		cfg.Audio.BitsPerSample = 8
	}

	var level = "info"
	if *verbose {
		level = "debug"
	}

	var logger, _ = NewLogger(os.Stderr, level, false)

	var err = cfg.Validate()
	if err != nil {
		logger.Error("bad option", "err", err)
		os.Exit(1)
	}

	var frame = LoadFrame(*imageFile, cfg, logger)

	var out, openErr = openWAVOutput(*outputFile, cfg.Audio)
	if openErr != nil {
		logger.Error("can't create output file", "path", *outputFile, "err", openErr)
		os.Exit(1)
	}

	var start = time.Now()

	err = NewEncoder(out, logger, nil).TransmitImage(frame)
	if err != nil {
		logger.Error("encode failed", "err", err)
		os.Exit(1)
	}

	if cfg.Ident.MorseWPM > 0 {
		SendMorse(out, out, cfg.Callsign, cfg.Ident.MorseWPM, uint32(cfg.Ident.ToneHz)) //nolint:gosec
	}

	var synth = out.Transmitter.(*Synth) //nolint:forcetypeassert
	var samples = synth.Samples()

	err = out.Close()
	if err != nil {
		logger.Error("error writing output file", "path", *outputFile, "err", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d samples (%.3f seconds of audio) to %s in %s.\n",
		samples, float64(samples)/float64(cfg.Audio.SampleRate), *outputFile, time.Since(start).Round(time.Millisecond))
}
