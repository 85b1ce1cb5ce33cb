package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Square wave tone on a Linux PWM output.
 *
 * Description:	Uses the sysfs interface:
 *
 *			/sys/class/pwm/pwmchipN/export
 *			/sys/class/pwm/pwmchipN/pwmM/period		(ns)
 *			/sys/class/pwm/pwmchipN/pwmM/duty_cycle	(ns)
 *			/sys/class/pwm/pwmchipN/pwmM/enable
 *
 *		The attribute files stay open and are rewritten in
 *		place, so a frequency change is three small writes
 *		and no allocation.  Feed the pin through a low pass
 *		filter into the radio's microphone input.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const DefaultPWMRoot = "/sys/class/pwm"

// PWMTone is a ToneGenerator on a PWM channel.
type PWMTone struct {
	period  *os.File
	duty    *os.File
	enable  *os.File
	percent uint64
	enabled bool
	num     []byte
	err     error
}

// OpenPWM exports the channel if needed.  dutyPercent is normally 50.
func OpenPWM(root string, chip int, channel int, dutyPercent int) (*PWMTone, error) {
	if dutyPercent <= 0 || dutyPercent >= 100 {
		return nil, fmt.Errorf("PWM duty cycle %d%% out of range", dutyPercent)
	}

	var chipDir = filepath.Join(root, fmt.Sprintf("pwmchip%d", chip))
	var dir = filepath.Join(chipDir, fmt.Sprintf("pwm%d", channel))

	var _, statErr = os.Stat(dir)
	if errors.Is(statErr, fs.ErrNotExist) {
		var err = os.WriteFile(filepath.Join(chipDir, "export"), []byte(strconv.Itoa(channel)), 0)
		if err != nil {
			return nil, fmt.Errorf("could not export PWM channel %d of chip %d: %w", channel, chip, err)
		}

		// Wait for udev to adjust permissions after export.
		time.Sleep(250 * time.Millisecond)
	}

	var p = &PWMTone{percent: uint64(dutyPercent), num: make([]byte, 0, 24)} //nolint:gosec

	var files = []struct {
		name string
		f    **os.File
	}{
		{"period", &p.period},
		{"duty_cycle", &p.duty},
		{"enable", &p.enable},
	}

	for _, a := range files {
		var f, err = os.OpenFile(filepath.Join(dir, a.name), os.O_WRONLY, 0)
		if err != nil {
			p.closeFiles()
			return nil, fmt.Errorf("PWM %s: %w", a.name, err)
		}

		*a.f = f
	}

	return p, nil
}

func (p *PWMTone) write(f *os.File, v uint64) {
	p.num = strconv.AppendUint(p.num[:0], v, 10)

	var _, err = f.WriteAt(p.num, 0)
	if err != nil && p.err == nil {
		p.err = err
	}
}

// SetFrequency reprograms the period.  Duty is zeroed first because the
// kernel refuses a duty cycle longer than the period.
func (p *PWMTone) SetFrequency(hz uint32) {
	if hz == 0 {
		p.Stop()
		return
	}

	var periodNs = uint64(time.Second) / uint64(hz)

	p.write(p.duty, 0)
	p.write(p.period, periodNs)
	p.write(p.duty, periodNs*p.percent/100)

	if !p.enabled {
		p.write(p.enable, 1)
		p.enabled = true
	}
}

func (p *PWMTone) Stop() {
	p.write(p.enable, 0)
	p.enabled = false
}

// Err reports the first write failure.
func (p *PWMTone) Err() error {
	return p.err
}

func (p *PWMTone) closeFiles() error {
	var err error

	for _, f := range []*os.File{p.period, p.duty, p.enable} {
		if f != nil {
			err = errors.Join(err, f.Close())
		}
	}

	return err
}

// Close silences the output and releases the attribute files.
func (p *PWMTone) Close() error {
	if p.enable != nil {
		p.Stop()
	}

	return errors.Join(p.err, p.closeFiles())
}

// pwmTransmitter pairs the PWM tone with the wall clock.
type pwmTransmitter struct {
	*PWMTone
	*RealtimeClock
}

func (t pwmTransmitter) Close() error {
	t.Idle()

	return t.PWMTone.Close()
}
