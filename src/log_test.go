package sstv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	var f, err = os.Open(path) //nolint:gosec
	require.NoError(t, err)

	defer f.Close()

	var rows, readErr = csv.NewReader(f).ReadAll()
	require.NoError(t, readErr)

	return rows
}

var testRecord = TxRecord{
	Time:     time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)),
	Source:   "cam/1.jpg",
	Width:    ImageWidth,
	Height:   ImageHeight,
	Duration: 127013 * time.Millisecond,
	Output:   OutputWAV,
	PTT:      PTTMethodNone,
}

func Test_TxLog_File(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "tx.csv")

	var l = OpenTxLog(false, path, testLogger())
	require.NoError(t, l.Write(testRecord))
	require.NoError(t, l.Write(testRecord))
	l.Close()

	var rows = readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, txLogHeader, rows[0])
	assert.Equal(t, []string{"1710045000", "2024-03-10T04:30:00Z", "cam/1.jpg", "PD120", "95", "640", "496", "127.013", "wav", "none"}, rows[1])

	// Reopening an existing file does not repeat the header.
	l = OpenTxLog(false, path, testLogger())
	require.NoError(t, l.Write(testRecord))
	l.Close()

	assert.Len(t, readCSV(t, path), 4)
}

func Test_TxLog_Daily(t *testing.T) {
	var dir = filepath.Join(t.TempDir(), "logs")

	var l = TxLogFromConfig(LogConfig{CSVDir: dir}, testLogger())
	require.NoError(t, l.Write(testRecord))

	var next = testRecord
	next.Time = next.Time.Add(24 * time.Hour)
	require.NoError(t, l.Write(next))
	l.Close()

	// Named by UTC date.
	assert.Len(t, readCSV(t, filepath.Join(dir, "2024-03-10.log")), 2)
	assert.Len(t, readCSV(t, filepath.Join(dir, "2024-03-11.log")), 2)
}

func Test_TxLog_Disabled(t *testing.T) {
	var l = TxLogFromConfig(LogConfig{}, testLogger())

	assert.Nil(t, l)
	assert.NoError(t, l.Write(testRecord))
	l.Close()
}
