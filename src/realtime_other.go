//go:build !linux

package sstv

import "github.com/charmbracelet/log"

func PrepareRealtime(logger *log.Logger) {
	logger.Debug("real time tuning is only implemented for Linux")
}
