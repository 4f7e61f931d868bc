package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr

	forceColor   bool
	disableColor bool
)

// SetOutput redirects OK/Fail/Panel, e.g. to a cobra command's writers.
func SetOutput(stdout, stderr io.Writer) {
	out, errOut = stdout, stderr
}

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// colorEnabled follows termenv's detection, which honours NO_COLOR and
// CLICOLOR_FORCE and reports Ascii for non-terminals.
func colorEnabled() bool {
	if disableColor {
		return false
	}
	if forceColor {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}

func C(color, s string) string {
	if color == "" || !colorEnabled() {
		return s
	}
	return color + s + reset
}

func Dim(s string) string { return C(dim, s) }

func OK(msg string)   { fmt.Fprintln(out, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(errOut, C(current.Error, symCross+" "+msg)) }
