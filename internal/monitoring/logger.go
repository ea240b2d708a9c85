// Package monitoring routes the capture core's diagnostic output through
// one replaceable sink, so embedding programs can redirect it and tests
// can silence it without touching the global log state.
package monitoring

import (
	"log"
	"os"
)

// Logf emits one diagnostic line. It defaults to a stderr logger with an
// "aperture" prefix.
var Logf func(format string, v ...interface{}) = log.New(os.Stderr, "aperture: ", log.LstdFlags).Printf

// SetLogger replaces the diagnostic sink. Passing nil discards all
// diagnostics.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Mute discards diagnostics until SetLogger installs a new sink. Used by
// tests that exercise paths with expected warnings.
func Mute() { SetLogger(nil) }
