package runtime

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	rlerrors "runlike/internal/errors"
)

// notFoundMarkers are matched case-insensitively against the inspect
// command's stderr.
var notFoundMarkers = []string{
	"no such image or container",
	"no such container",
	"no such object",
}

// CLIRuntime inspects containers by running `<docker command> inspect NAME`.
type CLIRuntime struct {
	command []string
}

// NewCLIRuntime splits dockerCommand with shell rules, so values like
// "sudo docker" or "podman --remote" work.
func NewCLIRuntime(dockerCommand string) (*CLIRuntime, error) {
	args, err := shlex.Split(dockerCommand)
	if err != nil {
		return nil, fmt.Errorf("invalid docker command %q: %w", dockerCommand, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("docker command is empty")
	}

	return &CLIRuntime{command: args}, nil
}

// Command returns the program and leading arguments used for inspection.
func (c *CLIRuntime) Command() []string {
	return append([]string(nil), c.command...)
}

// Inspect runs the inspect subprocess and returns its stdout.
func (c *CLIRuntime) Inspect(ctx context.Context, container string) ([]byte, error) {
	args := append(append([]string(nil), c.command[1:]...), "inspect", container)
	slog.Debug("Running inspect command", "program", c.command[0], "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diagnostic := strings.TrimSpace(stderr.String())
		if isNotFound(diagnostic) {
			return nil, rlerrors.NewNotFoundError(container, err)
		}
		if diagnostic == "" {
			diagnostic = err.Error()
		}
		return nil, rlerrors.NewInspectionError(container, diagnostic, err)
	}

	return stdout.Bytes(), nil
}

func isNotFound(diagnostic string) bool {
	lower := strings.ToLower(diagnostic)
	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
