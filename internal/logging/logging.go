package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Level prefixes, colorized at call time so NO_COLOR handling stays with
// fatih/color.
const (
	infoPrefix  = "[info] "
	debugPrefix = "[debug] "
	warnPrefix  = "[warn] "
	errorPrefix = "[error] "
)

// Logger is the per-invocation CLI logger. Verbosity is fixed at flag
// parse time; the zero value logs warnings and errors only.
type Logger struct {
	Verbose bool
	Debug   bool
}

// Infof logs progress detail to stdout when --verbose is set.
func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose {
		fmt.Fprintf(os.Stdout, color.GreenString(infoPrefix)+msg+"\n", args...)
	}
}

// Debugf logs internals to stdout when --debug is set.
func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(os.Stdout, color.CyanString(debugPrefix)+msg+"\n", args...)
	}
}

// Warnf logs a recoverable problem to stderr, at any verbosity.
func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString(warnPrefix)+msg+"\n", args...)
}

// Errorf logs a failure to stderr, at any verbosity.
func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString(errorPrefix)+msg+"\n", args...)
}
