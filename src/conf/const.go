// Package conf contains the constants that are used across packages for configuring
// versions, image formats and execution limits, as well as the run configuration
// loaded from disk.
package conf

import (
	"fmt"
	"time"
)

const (
	// SIGNATURE is put at the beginning of a dumped program so that binary images can be detected.
	SIGNATURE = "\x1bmx"
	// VERSION is the version of the mx application.
	VERSION = "mx 0.1.0"
	// VERSIONMAJORN is the major version.
	VERSIONMAJORN = 0
	// VERSIONMINORN is the minor version.
	VERSIONMINORN = 1
	// VERSIONPATCHN is the patch version.
	VERSIONPATCHN = 0
	// FORMAT dump/undump format incase it ever changes.
	FORMAT = 0
	// INITIALSTACKSIZE operand stack capacity reserved for each new frame.
	INITIALSTACKSIZE = 16
	// INITIALFRAMES call frame capacity reserved at the start of an execution.
	INITIALFRAMES = 8
	// DEFAULTSTEPLIMIT is the step limit used when none is configured. Zero means unlimited.
	DEFAULTSTEPLIMIT = 0
	// CONFIGFILE is the default name of the run configuration file.
	CONFIGFILE = "mx.toml"
)

// FullVersion returns the version and copyright.
func FullVersion() string {
	return fmt.Sprintf("%v Copyright (C) %v", VERSION, time.Now().Year())
}

// Copyright is the copyright to be written out in the CLI.
func Copyright() string {
	return fmt.Sprintf("Copyright (C) %v", time.Now().Year())
}
