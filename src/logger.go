package sstv

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the application logger.
func NewLogger(w io.Writer, level string, timestamps bool) (*log.Logger, error) {
	var lvl, err = log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrConfig, level)
	}

	var logger = log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: timestamps,
		Prefix:          "sstv",
	})

	return logger, nil
}
