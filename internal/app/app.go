package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	rlerrors "runlike/internal/errors"
	"runlike/internal/formatter"
	"runlike/internal/introspect"
	"runlike/internal/translator"
	"runlike/pkg/runtime"
)

// Options describe one reconstruction request.
type Options struct {
	Container string
	Translate translator.Options
	Pretty    bool
}

// Runner turns a container's inspection output into a docker run command.
type Runner struct {
	inspector runtime.Inspector
}

// NewRunner creates a Runner backed by inspector.
func NewRunner(inspector runtime.Inspector) *Runner {
	return &Runner{inspector: inspector}
}

// Run inspects opts.Container and returns the formatted command. A container
// that cannot be inspected never reaches translation.
func (r *Runner) Run(ctx context.Context, opts Options) (string, error) {
	if opts.Container == "" {
		return "", fmt.Errorf("container name or id is required")
	}

	runID := uuid.New().String()
	logger := slog.With("runId", runID, "container", opts.Container)
	logger.Info("Reconstructing run command", "pretty", opts.Pretty, "noName", opts.Translate.NoName)

	raw, err := r.inspector.Inspect(ctx, opts.Container)
	if err != nil {
		logger.Warn("Inspection failed", "error", err)
		return "", asInspectionError(opts.Container, err)
	}

	doc, err := introspect.Parse(raw)
	if err != nil {
		return "", err
	}
	if id, ok := doc.Optional("Id"); ok {
		logger.Debug("Inspection output parsed", "id", id)
	}

	params, err := translator.Translate(doc, opts.Translate)
	if err != nil {
		return "", err
	}

	logger.Info("Run command reconstructed", "params", len(params))
	return formatter.Format(params, opts.Pretty), nil
}

// asInspectionError leaves typed errors alone and classifies the rest as
// inspection failures.
func asInspectionError(container string, err error) error {
	var rlErr *rlerrors.RunlikeError
	if errors.As(err, &rlErr) {
		return err
	}
	return rlerrors.NewInspectionError(container, err.Error(), err)
}
