package formatter

import "strings"

// Program is the binary the rendered command line invokes.
const Program = "docker"

const (
	plainJoiner  = " "
	prettyJoiner = " \\\n\t"
)

// Joiner returns the separator placed between parameters. Pretty mode ends
// every line with a shell continuation and indents the next one.
func Joiner(pretty bool) string {
	if pretty {
		return prettyJoiner
	}
	return plainJoiner
}

// Format renders params as a single docker command line.
func Format(params []string, pretty bool) string {
	return Program + " " + strings.Join(params, Joiner(pretty))
}
