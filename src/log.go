package sstv

/*------------------------------------------------------------------
 *
 * Purpose:	Record each transmission in a CSV log file.
 *
 * Description: One row per image sent, easy to read back or load into
 *		a spreadsheet.
 *
 *		There are two alternatives here.
 *
 *		-L logfile		Specify full file path.
 *
 *		-l logdir		Daily names will be created here.
 *
 *		Use one or the other but not both.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var txLogHeader = []string{"utime", "isotime", "source", "mode", "vis", "width", "height", "duration", "output", "ptt"}

// TxRecord is one row of the transmission log.
type TxRecord struct {
	Time     time.Time
	Source   string
	Width    int
	Height   int
	Duration time.Duration
	Output   string
	PTT      string
}

// TxLog keeps the current file open between writes.
type TxLog struct {
	mu sync.Mutex

	dailyNames bool
	path       string // directory if dailyNames, otherwise the file
	fp         *os.File
	openFname  string

	log *log.Logger
}

/*------------------------------------------------------------------
 *
 * Function:	OpenTxLog
 *
 * Inputs:	dailyNames	- True if daily names should be generated.
 *				  In this case path is a directory.
 *				  When false, path would be the file name.
 *
 *		path		- Log file name or just directory.
 *				  Use "." for current directory.
 *				  Empty string disables logging, a nil
 *				  *TxLog is returned and is safe to use.
 *
 *------------------------------------------------------------------*/

func OpenTxLog(dailyNames bool, path string, logger *log.Logger) *TxLog {
	if path == "" {
		return nil
	}

	var l = &TxLog{dailyNames: dailyNames, path: path, log: logger}

	if !dailyNames {
		logger.Info("transmission log", "file", path)
		return l
	}

	var stat, statErr = os.Stat(path)

	switch {
	case statErr == nil && stat.IsDir():
	case statErr == nil:
		logger.Error("log file location is not a directory, using current working directory instead", "path", path)
		l.path = "."
	default:
		var mkdirErr = os.MkdirAll(path, 0o755) //nolint:gosec
		if mkdirErr != nil {
			logger.Error("failed to create log file location, using current working directory instead", "path", path, "err", mkdirErr)
			l.path = "."
		} else {
			logger.Info("log file location has been created", "path", path)
		}
	}

	return l
}

// TxLogFromConfig opens whichever of csv_file / csv_dir is set.
func TxLogFromConfig(cfg LogConfig, logger *log.Logger) *TxLog {
	if cfg.CSVDir != "" {
		return OpenTxLog(true, cfg.CSVDir, logger)
	}

	return OpenTxLog(false, cfg.CSVFile, logger)
}

// openFile must be called with mu held.
func (l *TxLog) openFile(now time.Time) error {
	var fullPath = l.path

	if l.dailyNames {
		// File name from the current UTC date.
		var fname = now.Format("2006-01-02.log")

		// Close current log file if name has changed.
		if l.fp != nil && fname != l.openFname {
			l.closeFile()
		}

		if l.fp != nil {
			return nil
		}

		fullPath = filepath.Join(l.path, fname)
		l.openFname = fname
	} else if l.fp != nil {
		return nil
	}

	var _, statErr = os.Stat(fullPath)
	var alreadyThere = statErr == nil

	l.log.Debug("opening log file", "path", fullPath)

	var f, err = os.OpenFile(fullPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644) //nolint:gosec
	if err != nil {
		l.openFname = ""
		return fmt.Errorf("can't open log file %q for write: %w", fullPath, err)
	}

	l.fp = f

	// Write a header suitable for importing into a spreadsheet
	// only if this will be the first line.
	if !alreadyThere {
		var w = csv.NewWriter(l.fp)
		_ = w.Write(txLogHeader)
		w.Flush()

		return w.Error()
	}

	return nil
}

// Write appends one record.  A nil *TxLog does nothing.
func (l *TxLog) Write(rec TxRecord) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var now = rec.Time.UTC()

	var err = l.openFile(now)
	if err != nil {
		return err
	}

	var w = csv.NewWriter(l.fp)
	_ = w.Write([]string{
		strconv.FormatInt(now.Unix(), 10),
		now.Format("2006-01-02T15:04:05Z"),
		rec.Source,
		ModeName,
		strconv.Itoa(VISCodePD120),
		strconv.Itoa(rec.Width),
		strconv.Itoa(rec.Height),
		fmt.Sprintf("%.3f", rec.Duration.Seconds()),
		rec.Output,
		rec.PTT,
	})
	w.Flush()

	return w.Error()
}

func (l *TxLog) closeFile() {
	if l.fp != nil {
		l.fp.Close()
	}

	l.fp = nil
	l.openFname = ""
}

// Close is called when exiting.
func (l *TxLog) Close() {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.closeFile()
}
