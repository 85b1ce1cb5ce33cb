package sstv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHID records HID output reports.
type mockHID struct {
	reports [][]byte
	closed  bool
}

func (m *mockHID) Write(b []byte) (int, error) {
	m.reports = append(m.reports, append([]byte(nil), b...))
	return len(b), nil
}

func (m *mockHID) Close() error {
	m.closed = true
	return nil
}

func TestCM108PTT_Reports(t *testing.T) {
	var mock = new(mockHID)
	var p = &cm108PTT{dev: mock, pin: CM108_DEFAULT_GPIO}

	require.NoError(t, p.Set(true))
	require.NoError(t, p.Set(false))

	// GPIO 3 is bit 2, always an output.
	assert.Equal(t, [][]byte{
		{0, 0, 0x04, 0x04, 0},
		{0, 0, 0x00, 0x04, 0},
	}, mock.reports)
}

func TestCM108PTT_InvertAndClose(t *testing.T) {
	var mock = new(mockHID)
	var p = &cm108PTT{dev: mock, pin: 1, invert: true}

	require.NoError(t, p.Set(true))
	require.NoError(t, p.Close())

	assert.Equal(t, [][]byte{
		{0, 0, 0x00, 0x01, 0},
		{0, 0, 0x01, 0x01, 0},
	}, mock.reports)
	assert.True(t, mock.closed)
}

func TestOpenCM108PTT_Device(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "hidraw0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	var p, err = OpenPTT(PTTConfig{Method: "CM108", Device: path, CM108GPIO: 8})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	var written, readErr = os.ReadFile(path) //nolint:gosec
	require.NoError(t, readErr)

	// Unkeyed when opened and again when closed.
	assert.Equal(t, []byte{0, 0, 0, 0x80, 0, 0, 0, 0, 0x80, 0}, written)
}

func TestOpenCM108PTT_BadPin(t *testing.T) {
	var _, err = openCM108PTT("/dev/null", 9, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range of 1 thru 8")
}

func TestPickCM108(t *testing.T) {
	var devices = []hidDevice{
		{Devnode: "/dev/hidraw0", Vendor: 0x046d, Product: 0xc52b}, // keyboard receiver
		{Devnode: "/dev/hidraw1", Vendor: 0x0d8c, Product: 0x013c},
		{Devnode: "/dev/hidraw2", Vendor: 0x1209, Product: 0x7388},
	}

	var dev, err = pickCM108(devices)
	require.NoError(t, err)
	assert.Equal(t, "/dev/hidraw1", dev)

	_, err = pickCM108(devices[:1])
	require.ErrorIs(t, err, ErrNoCM108)
}

func TestGoodCM108(t *testing.T) {
	assert.True(t, goodCM108(0x0d8c, 0x000c))
	assert.True(t, goodCM108(0x0c76, 0x1605))
	assert.True(t, goodCM108(0x1209, 0x7388))
	assert.False(t, goodCM108(0x0d8c, 0x0100))
	assert.False(t, goodCM108(0x046d, 0xc52b))
}
