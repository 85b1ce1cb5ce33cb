package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Activate the push to talk (PTT) signal of the radio
 *		for the duration of a transmission.
 *
 * Description:	Methods:
 *
 *		none	- VOX, or the radio is keyed some other way.
 *
 *		gpio	- general purpose I/O line via the Linux GPIO
 *			  character device, e.g. chip "gpiochip0" line 17.
 *
 *		serial	- RTS or DTR line of a serial port.  Typical
 *			  interface boards pull the PTT line low through
 *			  a transistor when the control line is asserted.
 *
 *		cm108	- GPIO pin of a USB audio adapter, see cm108.go.
 *
 *		hamlib	- rig control command, see hamlib.go.
 *
 *		Any method can be inverted for interfaces that are
 *		active low.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkg/term"
	"github.com/warthog618/go-gpiocdev"
)

// PTT keys and unkeys the transmitter.
type PTT interface {
	Set(on bool) error
	Close() error
}

var ErrUnknownPTTMethod = errors.New("unknown PTT method")

const (
	PTTMethodNone   = "none"
	PTTMethodGPIO   = "gpio"
	PTTMethodSerial = "serial"
	PTTMethodCM108  = "cm108"
	PTTMethodHamlib = "hamlib"
)

// OpenPTT sets up PTT from configuration.  The line starts unkeyed.
func OpenPTT(cfg PTTConfig) (PTT, error) {
	switch strings.ToLower(cfg.Method) {
	case "", PTTMethodNone:
		return nullPTT{}, nil
	case PTTMethodGPIO:
		return openGPIOPTT(cfg.Chip, cfg.Line, cfg.Invert)
	case PTTMethodSerial:
		return openSerialPTT(cfg.Device, cfg.Signal, cfg.Invert)
	case PTTMethodCM108:
		return openCM108PTT(cfg.Device, cfg.CM108GPIO, cfg.Invert)
	case PTTMethodHamlib:
		return openHamlibPTT(cfg.RigModel, cfg.Device, cfg.Rate)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPTTMethod, cfg.Method)
	}
}

type nullPTT struct{}

func (nullPTT) Set(bool) error { return nil }
func (nullPTT) Close() error   { return nil }

func level(on bool, invert bool) int {
	if on != invert {
		return 1
	}

	return 0
}

// gpiodOutputLine is the part of *gpiocdev.Line used here.
type gpiodOutputLine interface {
	SetValue(v int) error
	Close() error
}

type gpioPTT struct {
	line   gpiodOutputLine
	invert bool
}

func openGPIOPTT(chip string, offset int, invert bool) (*gpioPTT, error) {
	var line, err = gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(level(false, invert)),
		gpiocdev.WithConsumer("sstv-ptt"))
	if err != nil {
		return nil, fmt.Errorf("can't request GPIO line %d on %s for PTT: %w", offset, chip, err)
	}

	return &gpioPTT{line: line, invert: invert}, nil
}

func (p *gpioPTT) Set(on bool) error {
	return p.line.SetValue(level(on, p.invert))
}

func (p *gpioPTT) Close() error {
	var err = p.line.SetValue(level(false, p.invert))

	return errors.Join(err, p.line.Close())
}

// serialControlLines is the part of *term.Term used here.
type serialControlLines interface {
	SetRTS(v bool) error
	SetDTR(v bool) error
	Close() error
}

type serialPTT struct {
	port   serialControlLines
	useDTR bool
	invert bool
}

func openSerialPTT(device string, signal string, invert bool) (*serialPTT, error) {
	var useDTR bool

	switch strings.ToLower(signal) {
	case "", "rts":
	case "dtr":
		useDTR = true
	default:
		return nil, fmt.Errorf("%w: serial control line %q, expected RTS or DTR", ErrUnknownPTTMethod, signal)
	}

	var port, err = term.Open(device)
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s for PTT: %w", device, err)
	}

	var p = &serialPTT{port: port, useDTR: useDTR, invert: invert}

	err = p.Set(false)
	if err != nil {
		port.Close()
		return nil, err
	}

	return p, nil
}

func (p *serialPTT) Set(on bool) error {
	var v = level(on, p.invert) == 1

	if p.useDTR {
		return p.port.SetDTR(v)
	}

	return p.port.SetRTS(v)
}

func (p *serialPTT) Close() error {
	return errors.Join(p.Set(false), p.port.Close())
}
