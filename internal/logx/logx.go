// Package logx holds the process-wide loggers.
package logx

import (
	"io"
	"log"
	"os"
)

var (
	Info  = log.New(os.Stdout, "INFO: ", log.Lshortfile)
	Error = log.New(os.Stderr, "ERROR: ", log.Lshortfile)
)

// Quiet silences both loggers. Used by tests and -quiet.
func Quiet() {
	Info.SetOutput(io.Discard)
	Error.SetOutput(io.Discard)
}
