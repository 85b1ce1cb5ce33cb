//go:build linux

package sstv

import (
	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// PrepareRealtime keeps the process resident and raises its priority so
// the pixel clock is not held up by paging or other work.  Both need
// privileges; failure is only a warning.
func PrepareRealtime(logger *log.Logger) {
	var err = unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE)
	if err != nil {
		logger.Warn("could not lock memory, timing may suffer", "err", err)
	}

	err = unix.Setpriority(unix.PRIO_PROCESS, 0, -15)
	if err != nil {
		logger.Warn("could not raise priority, timing may suffer", "err", err)
	}
}
