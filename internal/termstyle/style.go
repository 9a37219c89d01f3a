package termstyle

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// enabled tracks whether ANSI styling is active.
// Defaults to true if stdout is a TTY and NO_COLOR is not set.
var enabled = detect(os.Stdout)

// detect reports whether f is a terminal that should receive color.
func detect(f *os.File) bool {
	if termenv.EnvNoColor() {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetEnabled overrides the auto-detected TTY check.
func SetEnabled(on bool) {
	enabled = on
}

func wrap(code, s string) string {
	if !enabled || s == "" {
		return s
	}
	return code + s + "\033[0m"
}

// Bold renders text in bold.
func Bold(s string) string { return wrap("\033[1m", s) }

// Dim renders text in dim/faint.
func Dim(s string) string { return wrap("\033[2m", s) }

// Red renders text in red.
func Red(s string) string { return wrap("\033[31m", s) }

// Green renders text in green.
func Green(s string) string { return wrap("\033[32m", s) }

// Yellow renders text in yellow.
func Yellow(s string) string { return wrap("\033[33m", s) }

// Symbols for status indicators.
func GreenDot() string  { return Green("●") }
func YellowDot() string { return Yellow("●") }
func RedDot() string    { return Red("●") }
func RedX() string      { return Red("✗") }
