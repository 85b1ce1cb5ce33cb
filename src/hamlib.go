package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	PTT by rig control (CAT) through Hamlib.
 *
 * Description:	The model number comes from the Hamlib list of
 *		supported radios, e.g. 1035 for a Yaesu FT-991.
 *		Model 2 is "NET rigctl": the device is then host:port
 *		of a running rigctld, such as localhost:4532.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"strings"

	goHamlib "github.com/xylo04/goHamlib"
)

const (
	HAMLIB_MIN_MODEL = 1
	HAMLIB_MAX_MODEL = 9999

	hamlibNetRigctl = 2
)

// rigControl is the part of *goHamlib.Rig used here.
type rigControl interface {
	SetPtt(vfo int, ptt int) error
	Close() error
	Cleanup() error
}

type hamlibPTT struct {
	rig rigControl
}

// hamlibPort describes how to reach the rig.  rate 0 keeps the model's default.
func hamlibPort(model int, device string, rate int) goHamlib.Port {
	var port = goHamlib.Port{
		RigPortType: goHamlib.RigPortSerial,
		Portname:    device,
		Baudrate:    rate,
		Databits:    8,
		Stopbits:    1,
		Parity:      goHamlib.ParityNone,
		Handshake:   goHamlib.HandshakeNone,
	}

	if model == hamlibNetRigctl || (strings.Contains(device, ":") && !strings.HasPrefix(device, "/")) {
		port.RigPortType = goHamlib.RigPortNetwork
	}

	return port
}

func openHamlibPTT(model int, device string, rate int) (*hamlibPTT, error) {
	if model < HAMLIB_MIN_MODEL || model > HAMLIB_MAX_MODEL {
		return nil, fmt.Errorf("unreasonable model number %d for hamlib", model)
	}

	var rig = new(goHamlib.Rig)

	var err = rig.Init(model)
	if err != nil {
		return nil, fmt.Errorf("hamlib init of model %d: %w", model, err)
	}

	err = rig.SetPort(hamlibPort(model, device, rate))
	if err != nil {
		rig.Cleanup()
		return nil, fmt.Errorf("hamlib port %s: %w", device, err)
	}

	err = rig.Open()
	if err != nil {
		rig.Cleanup()
		return nil, fmt.Errorf("hamlib rig open on %s: %w", device, err)
	}

	var p = &hamlibPTT{rig: rig}

	err = p.Set(false)
	if err != nil {
		return nil, errors.Join(err, p.release())
	}

	return p, nil
}

func (p *hamlibPTT) Set(on bool) error {
	var ptt = goHamlib.RigPttOff
	if on {
		ptt = goHamlib.RigPttOn
	}

	var err = p.rig.SetPtt(goHamlib.VFOCurrent, ptt)
	if err != nil {
		return fmt.Errorf("hamlib set PTT: %w", err)
	}

	return nil
}

func (p *hamlibPTT) release() error {
	return errors.Join(p.rig.Close(), p.rig.Cleanup())
}

func (p *hamlibPTT) Close() error {
	return errors.Join(p.Set(false), p.release())
}
