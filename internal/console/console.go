// Package console provides leveled, colored terminal output for gk commands.
// All diagnostics go to stderr; stdout is reserved for command payloads
// (tables, JSON) so orchestrators can parse it.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dryRunStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))

	// Accent styles the value half of a status line.
	Accent = lipgloss.NewStyle().Bold(true)
	// Faint styles secondary detail text.
	Faint = lipgloss.NewStyle().Faint(true)
)

// Stderr is the diagnostic sink. Tests may swap it to capture output.
var Stderr io.Writer = os.Stderr

var verbose bool

// SetVerbose toggles Debugf output.
func SetVerbose(v bool) {
	verbose = v
}

// Errorf prints an [ERROR]-prefixed line to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", errorStyle.Render("[ERROR]"), fmt.Sprintf(format, args...))
}

// Warnf prints a [WARN]-prefixed line to stderr.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", warnStyle.Render("[WARN]"), fmt.Sprintf(format, args...))
}

// Infof prints an [INFO]-prefixed line to stderr.
func Infof(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", infoStyle.Render("[INFO]"), fmt.Sprintf(format, args...))
}

// Okf prints an [OK]-prefixed line to stderr.
func Okf(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", okStyle.Render("[OK]"), fmt.Sprintf(format, args...))
}

// DryRunf prints a [DRY-RUN]-prefixed line to stderr.
func DryRunf(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", dryRunStyle.Render("[DRY-RUN]"), fmt.Sprintf(format, args...))
}

// Debugf prints an [INFO]-prefixed line only when verbose mode is enabled.
func Debugf(format string, args ...interface{}) {
	if verbose {
		Infof(format, args...)
	}
}
