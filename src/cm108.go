package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	PTT through a GPIO pin of a CM108 family USB audio
 *		adapter.
 *
 * Description:	Many cheap USB sound adapters (CMedia CM108, CM119,
 *		SSS1621, the All in One cable) have spare GPIO pins
 *		reachable through their HID interface.  Interface
 *		boards use GPIO 3 for PTT.
 *
 *		The HID output report is 5 bytes:
 *
 *			0, 0, data, direction mask, 0
 *
 *		LSB of data and mask is GPIO 1.
 *
 *		Without an explicit /dev/hidrawN the first hidraw
 *		device of a known adapter, found with udev, is used.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jochenvg/go-udev"
)

const (
	CM108_DEFAULT_GPIO = 3
	CM108_MIN_GPIO     = 1
	CM108_MAX_GPIO     = 8
)

var ErrNoCM108 = errors.New("no CM108 compatible USB audio adapter found")

// hidDevice is a hidraw node and the USB ids of the device it belongs to.
type hidDevice struct {
	Devnode string
	Vendor  uint16
	Product uint16
}

// Adapters known to have working GPIO.
func goodCM108(vid, pid uint16) bool {
	switch vid {
	case 0x0d8c: // CMedia
		return (pid >= 0x0008 && pid <= 0x000f) || pid == 0x0012 || pid == 0x013a || pid == 0x013c
	case 0x0c76: // SSS
		return pid == 0x1605 || pid == 0x1607 || pid == 0x160b
	case 0x1209: // AIOC
		return pid == 0x7388
	default:
		return false
	}
}

// udevHIDDevices lists hidraw nodes with the ids of their USB parent.
func udevHIDDevices() ([]hidDevice, error) {
	var u udev.Udev

	var e = u.NewEnumerate()

	var err = e.AddMatchSubsystem("hidraw")
	if err != nil {
		return nil, fmt.Errorf("udev: %w", err)
	}

	err = e.AddMatchIsInitialized()
	if err != nil {
		return nil, fmt.Errorf("udev: %w", err)
	}

	var devices, devErr = e.Devices()
	if devErr != nil {
		return nil, fmt.Errorf("udev: %w", devErr)
	}

	var found []hidDevice

	for _, d := range devices {
		var usb = d.ParentWithSubsystemDevtype("usb", "usb_device")
		if usb == nil {
			continue
		}

		var vid, vidErr = strconv.ParseUint(usb.SysattrValue("idVendor"), 16, 16)
		var pid, pidErr = strconv.ParseUint(usb.SysattrValue("idProduct"), 16, 16)

		if vidErr != nil || pidErr != nil || d.Devnode() == "" {
			continue
		}

		found = append(found, hidDevice{Devnode: d.Devnode(), Vendor: uint16(vid), Product: uint16(pid)})
	}

	slices.SortFunc(found, func(a, b hidDevice) int {
		return strings.Compare(a.Devnode, b.Devnode)
	})

	return found, nil
}

// pickCM108 returns the first known adapter.
func pickCM108(devices []hidDevice) (string, error) {
	for _, d := range devices {
		if goodCM108(d.Vendor, d.Product) {
			return d.Devnode, nil
		}
	}

	return "", ErrNoCM108
}

// hidOutput is the part of *os.File used here.
type hidOutput interface {
	Write(b []byte) (int, error)
	Close() error
}

type cm108PTT struct {
	dev    hidOutput
	pin    int
	invert bool
	report [5]byte
}

func openCM108PTT(device string, pin int, invert bool) (*cm108PTT, error) {
	if pin < CM108_MIN_GPIO || pin > CM108_MAX_GPIO {
		return nil, fmt.Errorf("CM108 GPIO number %d is not in range of %d thru %d", pin, CM108_MIN_GPIO, CM108_MAX_GPIO)
	}

	if device == "" {
		var devices, err = udevHIDDevices()
		if err != nil {
			return nil, err
		}

		device, err = pickCM108(devices)
		if err != nil {
			return nil, fmt.Errorf("%w; name a device such as /dev/hidraw1", err)
		}
	}

	var f, err = os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open %s for CM108 PTT: %w", device, err)
	}

	var p = &cm108PTT{dev: f, pin: pin, invert: invert}

	err = p.Set(false)
	if err != nil {
		f.Close()
		return nil, err
	}

	return p, nil
}

func (p *cm108PTT) Set(on bool) error {
	var bit = byte(1) << (p.pin - 1)

	p.report = [5]byte{0, 0, 0, bit, 0}
	if level(on, p.invert) == 1 {
		p.report[2] = bit
	}

	var n, err = p.dev.Write(p.report[:])
	if err != nil {
		return fmt.Errorf("CM108 write: %w", err)
	}

	if n != len(p.report) {
		return fmt.Errorf("CM108 short write, %d of %d bytes", n, len(p.report))
	}

	return nil
}

func (p *cm108PTT) Close() error {
	return errors.Join(p.Set(false), p.dev.Close())
}
