// Package logging initializes the root logger and provides some helpers.
package logging

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const verboseEnv = "CPPDOC_VERBOSE"

var root logr.Logger

// Log returns the root logger.
func Log() logr.Logger { return root }

func init() { // verbosity from the environment; Init can override it
	root = New(os.Stderr)
	if n, err := strconv.Atoi(os.Getenv(verboseEnv)); err == nil {
		stdr.SetVerbosity(n)
	}
}

// Init sets verbosity for the root logger.
func Init(verbosity int) {
	if verbosity != 0 { // if not set, let env verbosity stand
		stdr.SetVerbosity(verbosity)
	}
}

// New returns a logger writing to w with the cppdoc prefix.
func New(w io.Writer) logr.Logger {
	return stdr.New(log.New(w, "cppdoc ", log.Ltime))
}

// Paths logs a list of file paths as one comma-separated value.
type Paths []string

func (p Paths) MarshalLog() any { return strings.Join(p, ", ") }
