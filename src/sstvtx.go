package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Station program: send an image, or every new image
 *		dropped into a directory, keying the radio around
 *		each transmission.
 *
 * Description:	Settings come from a YAML file (-c) with command line
 *		options taking priority.
 *
 *		Interrupting the program drops PTT straight away and
 *		exits.  A transmission in progress is not finished.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func SSTVTxMain() {
	var configFile = pflag.StringP("config", "c", "", "YAML configuration file.")
	var imageFile = pflag.StringP("image", "i", "", "Picture to send.  Without one the test card is sent.")
	var watchDir = pflag.StringP("watch", "w", "", "Send every new picture that appears in this directory.")
	var outputMode = pflag.StringP("output", "O", "", "Output: wav, audio or pwm.")
	var wavPattern = pflag.StringP("wav-pattern", "o", "", "strftime pattern for .wav file names.")
	var callsign = pflag.String("callsign", "", "Station callsign.")
	var morseWPM = pflag.IntP("morse-wpm", "M", 0, "Identify in Morse at this speed after each image.  0 to disable.")
	var pttMethod = pflag.StringP("ptt", "p", "", "PTT method: none, gpio, serial, cm108 or hamlib.")
	var pttChip = pflag.String("ptt-chip", "", "GPIO chip for PTT, e.g. gpiochip0.")
	var pttLine = pflag.Int("ptt-line", 0, "GPIO line offset for PTT.")
	var pttDevice = pflag.String("ptt-device", "", "Serial port, /dev/hidrawN or rigctld host:port for PTT.")
	var pttSignal = pflag.String("ptt-signal", "", "Serial control line for PTT: rts or dtr.")
	var pttInvert = pflag.Bool("ptt-invert", false, "PTT is active low.")
	var pttCM108GPIO = pflag.Int("ptt-cm108-gpio", CM108_DEFAULT_GPIO, "GPIO number of a CM108 USB audio adapter for PTT.")
	var pttRigModel = pflag.Int("ptt-rig-model", 0, "Hamlib rig model number for PTT by CAT command.")
	var pttRate = pflag.Int("ptt-rate", 0, "Hamlib serial port speed.  0 for the rig's default.")
	var metricsAddr = pflag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9120.")
	var logFile = pflag.StringP("log-file", "L", "", "Transmission log file name.")
	var logDir = pflag.StringP("log-dir", "l", "", "Directory for daily transmission log files.")
	var logLevel = pflag.String("log-level", "", "debug, info, warn or error.")
	var version = pflag.BoolP("version", "v", false, "Print version and exit.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - PD120 SSTV transmitter.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  sstvtx -c station.yaml -w /var/spool/sstv\n")
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *version {
		printVersion(os.Stdout, false)
		return
	}

	var cfg, err = LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	var changed = pflag.CommandLine.Changed

	if changed("image") {
		cfg.Image.Path = *imageFile
	}

	if changed("watch") {
		cfg.Watch.Dir = *watchDir
	}

	if changed("output") {
		cfg.Output.Mode = *outputMode
	}

	if changed("wav-pattern") {
		cfg.Output.WAVPattern = *wavPattern
	}

	if changed("callsign") {
		cfg.Callsign = *callsign
	}

	if changed("morse-wpm") {
		cfg.Ident.MorseWPM = *morseWPM
	}

	if changed("ptt") {
		cfg.PTT.Method = *pttMethod
	}

	if changed("ptt-chip") {
		cfg.PTT.Chip = *pttChip
	}

	if changed("ptt-line") {
		cfg.PTT.Line = *pttLine
	}

	if changed("ptt-device") {
		cfg.PTT.Device = *pttDevice
	}

	if changed("ptt-signal") {
		cfg.PTT.Signal = *pttSignal
	}

	if changed("ptt-invert") {
		cfg.PTT.Invert = *pttInvert
	}

	if changed("ptt-cm108-gpio") {
		cfg.PTT.CM108GPIO = *pttCM108GPIO
	}

	if changed("ptt-rig-model") {
		cfg.PTT.RigModel = *pttRigModel
	}

	if changed("ptt-rate") {
		cfg.PTT.Rate = *pttRate
	}

	if changed("metrics-addr") {
		cfg.Metrics.Listen = *metricsAddr
	}

	if changed("log-file") {
		cfg.Log.CSVFile = *logFile
	}

	if changed("log-dir") {
		cfg.Log.CSVDir = *logDir
	}

	if changed("log-level") {
		cfg.Log.Level = *logLevel
	}

	err = cfg.Validate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	var logger, logErr = NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Timestamps)
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", logErr)
		os.Exit(1)
	}

	err = runStation(cfg, logger)
	if err != nil {
		logger.Error("stopped", "err", err)
		os.Exit(1)
	}
}

func runStation(cfg *Config, logger *log.Logger) error {
	if cfg.Output.Mode == OutputPWM {
		PrepareRealtime(logger)
	}

	var metrics *Metrics

	if cfg.Metrics.Listen != "" {
		metrics = NewMetrics()
		serveMetrics(cfg.Metrics.Listen, metrics, logger)
	}

	var ptt, err = OpenPTT(cfg.PTT)
	if err != nil {
		return err
	}

	var txlog = TxLogFromConfig(cfg.Log, logger)
	defer txlog.Close()

	var station = NewStation(cfg, ptt, logger, metrics, txlog)
	defer station.Close()

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		var sig = <-sigs

		logger.Warn("interrupted, dropping PTT", "signal", sig)

		var unkeyErr = station.Unkey()
		if unkeyErr != nil {
			logger.Error("could not drop PTT", "err", unkeyErr)
		}

		txlog.Close()
		os.Exit(1)
	}()

	if cfg.Watch.Dir == "" {
		var frame = LoadFrame(cfg.Image.Path, cfg, logger)
		return station.Send(frame, sourceName(cfg.Image.Path))
	}

	return WatchImages(context.Background(), cfg.Watch.Dir, cfg.Watch.Extensions, DefaultSettleTime, logger, func(path string) {
		var frame = LoadFrame(path, cfg, logger)

		var sendErr = station.Send(frame, path)
		if sendErr != nil {
			logger.Error("transmission failed", "path", path, "err", sendErr)
		}
	})
}

func sourceName(path string) string {
	if path == "" {
		return "testcard"
	}

	return path
}

func serveMetrics(addr string, metrics *Metrics, logger *log.Logger) {
	var mux = http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	var server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)

		var err = server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
}
