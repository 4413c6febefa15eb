package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type ConsoleStyle int

const (
	StyleNormal ConsoleStyle = iota
	StyleError
	StyleWarning
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

type Console struct {
	out       io.Writer
	errOut    io.Writer
	useColors bool
}

func NewConsole() *Console {
	return &Console{
		out:       os.Stdout,
		errOut:    os.Stderr,
		useColors: isTerminal(os.Stderr),
	}
}

// NewConsoleWithWriters builds a console over arbitrary writers, mainly for tests.
func NewConsoleWithWriters(out, errOut io.Writer, useColors bool) *Console {
	return &Console{
		out:       out,
		errOut:    errOut,
		useColors: useColors,
	}
}

func isTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (c *Console) formatMessage(style ConsoleStyle, message string) string {
	if !c.useColors {
		return message
	}

	var color string
	switch style {
	case StyleError:
		color = colorRed + colorBold
	case StyleWarning:
		color = colorYellow
	default:
		return message
	}

	return color + message + colorReset
}

func (c *Console) PrintError(message string) {
	fmt.Fprintf(c.errOut, "%s\n", c.formatMessage(StyleError, "Error: "+message))
}

func (c *Console) PrintWarning(message string) {
	fmt.Fprintf(c.errOut, "%s\n", c.formatMessage(StyleWarning, "Warning: "+message))
}

// PrintResult writes the command line to stdout without styling so it can be
// piped or pasted into a shell.
func (c *Console) PrintResult(result string) {
	fmt.Fprintln(c.out, result)
}

// FormatErrorMessage renders context and cause on a single line. Runs of
// whitespace, including newlines from subprocess output, collapse to one space.
func (c *Console) FormatErrorMessage(context, cause string) string {
	var parts []string

	if context = singleLine(context); context != "" {
		parts = append(parts, context)
	}

	if cause = singleLine(cause); cause != "" {
		parts = append(parts, cause)
	}

	return strings.Join(parts, ": ")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
