package translator

import (
	"fmt"
	"strings"

	"runlike/internal/introspect"
	"runlike/pkg/inspect"
)

// Options are the caller's choices that shape the generated command.
type Options struct {
	// NoName omits --name.
	NoName bool
	// ExtraOptions are appended verbatim right after the name.
	ExtraOptions []string
	// InteractiveTTY suppresses --detach=true.
	InteractiveTTY bool
}

// section contributes the tokens for one concern. Sections don't share state;
// Translate concatenates their output in the order listed in sections.
type section func(c *inspect.Container, opts Options) []string

var sections = []section{
	nameOptions,
	extraOptions,
	envOptions,
	volumeOptions,
	volumesFromOptions,
	portOptions,
	linkOptions,
	detachOptions,
	ttyOptions,
}

// Translate builds the docker run parameters for doc: "run", the options,
// the image and the space-joined command. The command token is present even
// when the container has no Cmd.
func Translate(doc *introspect.Document, opts Options) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("translate: nil document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	c := doc.Container

	params := []string{"run"}
	for _, s := range sections {
		params = append(params, s(&c, opts)...)
	}

	return append(params, c.Config.Image, strings.Join(c.Config.Cmd, " ")), nil
}

// localName strips the leading slash and, when present, the namespace
// segment in front of the user-visible name: "/ns/web" and "/web" both give "web".
func localName(name string) string {
	trimmed := strings.TrimPrefix(name, "/")
	if _, rest, ok := strings.Cut(trimmed, "/"); ok {
		return rest
	}
	return trimmed
}
