package sstv

import (
	"os"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_VersionString(t *testing.T) {
	assert.Equal(t, "PD120 SSTV - Version !UNKNOWN! (revision UNKNOWN-UNKNOWNDIRTY, built at UNKNOWN)", versionString(nil))

	var bi = &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2025-01-01T00:00:00Z"},
	}}

	SSTV_VERSION = "1.2.3"
	defer func() { SSTV_VERSION = "" }()

	assert.Equal(t, "PD120 SSTV - Version 1.2.3 (revision abc123-DIRTY, built at 2025-01-01T00:00:00Z)", versionString(bi))
}

func Test_PrintVersion(t *testing.T) {
	AssertOutputContains(t, func() { printVersion(os.Stdout, false) }, "PD120 SSTV - Version")
}
