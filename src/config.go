package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Station configuration.
 *
 * Description:	A YAML file is decoded on top of DefaultConfig(), so
 *		it only needs the settings that differ.  Command line
 *		options are applied afterwards by the caller.
 *
 *		Example:
 *
 *			callsign: N0CALL
 *			output:
 *			  mode: audio
 *			ptt:
 *			  method: gpio
 *			  chip: gpiochip0
 *			  line: 17
 *			  txdelay: 300ms
 *			overlay:
 *			  top: "N0CALL"
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrConfig = errors.New("invalid configuration")

const (
	OutputWAV   = "wav"
	OutputAudio = "audio"
	OutputPWM   = "pwm"
)

const (
	DEFAULT_SAMPLES_PER_SEC = 44100
	DEFAULT_BITS_PER_SAMPLE = 16
	MIN_SAMPLES_PER_SEC     = 8000
	MAX_SAMPLES_PER_SEC     = 192000
)

type Config struct {
	Callsign string        `yaml:"callsign"`
	Audio    AudioConfig   `yaml:"audio"`
	Output   OutputConfig  `yaml:"output"`
	PTT      PTTConfig     `yaml:"ptt"`
	PWM      PWMConfig     `yaml:"pwm"`
	Image    ImageConfig   `yaml:"image"`
	Overlay  OverlayConfig `yaml:"overlay"`
	Ident    IdentConfig   `yaml:"ident"`
	Watch    WatchConfig   `yaml:"watch"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Log      LogConfig     `yaml:"log"`
}

type AudioConfig struct {
	SampleRate      int `yaml:"sample_rate"`
	Amplitude       int `yaml:"amplitude"` // 0 .. 100
	BitsPerSample   int `yaml:"bits_per_sample"`
	FramesPerBuffer int `yaml:"frames_per_buffer"`
}

type OutputConfig struct {
	Mode string `yaml:"mode"`
	// strftime pattern for wav mode, e.g. "sstv-%Y%m%d-%H%M%S.wav".
	WAVPattern string `yaml:"wav_pattern"`
}

type PTTConfig struct {
	Method string `yaml:"method"`
	Chip   string `yaml:"chip"`
	Line   int    `yaml:"line"`
	Device string `yaml:"device"`
	Signal string `yaml:"signal"` // rts or dtr
	Invert bool   `yaml:"invert"`

	// cm108: GPIO pin 1 .. 8.  Device may name /dev/hidrawN.
	CM108GPIO int `yaml:"cm108_gpio"`

	// hamlib: model number and serial speed, 0 for the model's default.
	// Device is the serial port, or host:port of rigctld.
	RigModel int `yaml:"rig_model"`
	Rate     int `yaml:"rate"`

	TXDelay time.Duration `yaml:"txdelay"`
	TXTail  time.Duration `yaml:"txtail"`
}

type PWMConfig struct {
	Root        string `yaml:"root"`
	Chip        int    `yaml:"chip"`
	Channel     int    `yaml:"channel"`
	DutyPercent int    `yaml:"duty_percent"`
}

type ImageConfig struct {
	Path       string `yaml:"path"`
	Background uint16 `yaml:"background"` // RGB565
	ColorBar   bool   `yaml:"colorbar"`
}

type OverlayConfig struct {
	Top     TextConfig `yaml:"top"`
	Bottom  TextConfig `yaml:"bottom"`
	Color   uint16     `yaml:"color"`   // RGB565
	Outline uint16     `yaml:"outline"` // RGB565
}

type TextConfig struct {
	Text  string `yaml:"text"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"` // baseline
	Scale int    `yaml:"scale"`
}

// UnmarshalYAML also accepts a bare string for just the text.
func (t *TextConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Text = value.Value
		return nil
	}

	type plain TextConfig

	return value.Decode((*plain)(t))
}

type IdentConfig struct {
	MorseWPM int `yaml:"morse_wpm"` // 0 disables
	ToneHz   int `yaml:"tone"`
}

type WatchConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Timestamps bool   `yaml:"timestamps"`
	CSVFile    string `yaml:"csv_file"`
	CSVDir     string `yaml:"csv_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Callsign: "N0CALL",
		Audio: AudioConfig{
			SampleRate:      DEFAULT_SAMPLES_PER_SEC,
			Amplitude:       50,
			BitsPerSample:   DEFAULT_BITS_PER_SAMPLE,
			FramesPerBuffer: 1024,
		},
		Output: OutputConfig{
			Mode:       OutputWAV,
			WAVPattern: "sstv-%Y%m%d-%H%M%S.wav",
		},
		PTT: PTTConfig{
			Method:    PTTMethodNone,
			Chip:      "gpiochip0",
			Signal:    "rts",
			CM108GPIO: CM108_DEFAULT_GPIO,
			TXDelay:   300 * time.Millisecond,
			TXTail:    100 * time.Millisecond,
		},
		PWM: PWMConfig{
			Root:        DefaultPWMRoot,
			DutyPercent: 50,
		},
		Image: ImageConfig{
			Background: DefaultBackground,
			ColorBar:   true,
		},
		Overlay: OverlayConfig{
			Top:     TextConfig{X: 10, Y: 40, Scale: 3},
			Bottom:  TextConfig{X: 10, Y: 470, Scale: 2},
			Color:   0xFFFF,
			Outline: 0x0000,
		},
		Ident: IdentConfig{
			ToneHz: MORSE_TONE,
		},
		Watch: WatchConfig{
			Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"},
		},
		Log: LogConfig{
			Level:      "info",
			Timestamps: true,
		},
	}
}

// LoadConfig reads path over the defaults.  An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg = DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	var data, err = os.ReadFile(path) //nolint:gosec // user supplied config file
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = cfg.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) decode(r io.Reader) error {
	var dec = yaml.NewDecoder(r)
	dec.KnownFields(true)

	var err = dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string

	if c.Audio.SampleRate < MIN_SAMPLES_PER_SEC || c.Audio.SampleRate > MAX_SAMPLES_PER_SEC {
		problems = append(problems, fmt.Sprintf("audio sample rate %d not in range %d to %d", c.Audio.SampleRate, MIN_SAMPLES_PER_SEC, MAX_SAMPLES_PER_SEC))
	}

	if c.Audio.Amplitude < 0 || c.Audio.Amplitude > 100 {
		problems = append(problems, fmt.Sprintf("audio amplitude %d not in range 0 to 100", c.Audio.Amplitude))
	}

	if c.Audio.BitsPerSample != 8 && c.Audio.BitsPerSample != 16 {
		problems = append(problems, fmt.Sprintf("bits per sample must be 8 or 16, not %d", c.Audio.BitsPerSample))
	}

	if c.Audio.FramesPerBuffer <= 0 {
		problems = append(problems, "frames per buffer must be positive")
	}

	switch c.Output.Mode {
	case OutputWAV:
		if c.Output.WAVPattern == "" {
			problems = append(problems, "wav output needs output.wav_pattern")
		}
	case OutputAudio, OutputPWM:
	default:
		problems = append(problems, fmt.Sprintf("output mode %q is not one of wav, audio, pwm", c.Output.Mode))
	}

	switch strings.ToLower(c.PTT.Method) {
	case "", PTTMethodNone:
	case PTTMethodGPIO:
		if c.PTT.Chip == "" || c.PTT.Line < 0 {
			problems = append(problems, "gpio PTT needs a chip and a line number")
		}
	case PTTMethodSerial:
		if c.PTT.Device == "" {
			problems = append(problems, "serial PTT needs a device")
		}
	case PTTMethodCM108:
		if c.PTT.CM108GPIO < CM108_MIN_GPIO || c.PTT.CM108GPIO > CM108_MAX_GPIO {
			problems = append(problems, fmt.Sprintf("CM108 GPIO number %d is not in range of %d thru %d", c.PTT.CM108GPIO, CM108_MIN_GPIO, CM108_MAX_GPIO))
		}
	case PTTMethodHamlib:
		if c.PTT.RigModel < HAMLIB_MIN_MODEL || c.PTT.RigModel > HAMLIB_MAX_MODEL {
			problems = append(problems, fmt.Sprintf("unreasonable model number %d for hamlib", c.PTT.RigModel))
		}

		if c.PTT.Device == "" {
			problems = append(problems, "hamlib PTT needs a port")
		}

		if c.PTT.Rate < 0 {
			problems = append(problems, fmt.Sprintf("hamlib serial speed %d can't be negative", c.PTT.Rate))
		}
	default:
		problems = append(problems, fmt.Sprintf("PTT method %q is not one of none, gpio, serial, cm108, hamlib", c.PTT.Method))
	}

	if c.PTT.TXDelay < 0 || c.PTT.TXTail < 0 {
		problems = append(problems, "txdelay and txtail can't be negative")
	}

	if c.Output.Mode == OutputPWM && (c.PWM.DutyPercent <= 0 || c.PWM.DutyPercent >= 100) {
		problems = append(problems, fmt.Sprintf("PWM duty cycle %d%% out of range", c.PWM.DutyPercent))
	}

	if c.Ident.MorseWPM < 0 || c.Ident.MorseWPM > 60 {
		problems = append(problems, fmt.Sprintf("morse speed %d wpm not in range 0 to 60", c.Ident.MorseWPM))
	}

	if c.Ident.MorseWPM > 0 && (c.Ident.ToneHz < 300 || c.Ident.ToneHz > 3000) {
		problems = append(problems, fmt.Sprintf("morse tone %d Hz not in range 300 to 3000", c.Ident.ToneHz))
	}

	if c.Log.CSVFile != "" && c.Log.CSVDir != "" {
		problems = append(problems, "use csv_file or csv_dir but not both")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfig, strings.Join(problems, "; "))
	}

	return nil
}
