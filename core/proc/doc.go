// Package proc implements the process lifecycle primitives used by the shell:
// reading the process table, delivering termination signals and launching
// programs either in place of the current process or as a waited-on child.
//
// Everything here is Linux/POSIX specific. None of the functions retain state
// between calls; the only state involved is the OS process table itself.
package proc

import (
	"io"
	"log"
)

var logger = log.New(io.Discard, "", log.LstdFlags)

// SetLogger redirects the package's diagnostic output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", log.LstdFlags)
	}
	logger = l
}
