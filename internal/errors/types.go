package errors

import (
	"errors"
	"fmt"
)

var (
	ErrContainerNotFound = errors.New("container not found")
	ErrInspectionFailed  = errors.New("container inspection failed")
	ErrParseFailed       = errors.New("inspection output parsing failed")
	ErrFieldAccess       = errors.New("required field missing")
	ErrRuntimeFailed     = errors.New("runtime operation failed")
	ErrConfigInvalid     = errors.New("configuration invalid")
)

type RunlikeError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *RunlikeError) Error() string {
	return e.OriginalErr.Error()
}

func (e *RunlikeError) Unwrap() error {
	return e.OriginalErr
}

// Is reports whether target is the sentinel this error was classified as.
func (e *RunlikeError) Is(target error) bool {
	return e.Type != nil && target == e.Type
}

// FieldAccessError reports a dotted document path that could not be resolved.
type FieldAccessError struct {
	Path string
}

func (e *FieldAccessError) Error() string {
	return fmt.Sprintf("missing field %q in inspection output", e.Path)
}

func (e *FieldAccessError) Is(target error) bool {
	return target == ErrFieldAccess
}

func NewRunlikeError(errorType error, context, cause, suggestion string, originalErr error) *RunlikeError {
	if originalErr == nil {
		originalErr = errorType
	}
	return &RunlikeError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewNotFoundError(container string, originalErr error) *RunlikeError {
	return NewRunlikeError(ErrContainerNotFound,
		fmt.Sprintf("No such container %s", container),
		"",
		"List existing containers with 'docker ps -a'",
		fmt.Errorf("%w: %s", ErrContainerNotFound, container),
	).withWrapped(originalErr)
}

// NewInspectionError keeps the collaborator's diagnostic text as the cause.
func NewInspectionError(container, diagnostic string, originalErr error) *RunlikeError {
	return NewRunlikeError(ErrInspectionFailed,
		fmt.Sprintf("Failed to inspect container %s", container),
		diagnostic,
		"Check that the docker daemon is reachable",
		fmt.Errorf("inspect %s: %s", container, diagnostic),
	).withWrapped(originalErr)
}

func NewParseError(context, cause string, originalErr error) *RunlikeError {
	return NewRunlikeError(ErrParseFailed, context, cause,
		"Make sure the inspect command prints JSON", originalErr)
}

func NewFieldAccessError(path string) *RunlikeError {
	return NewRunlikeError(ErrFieldAccess,
		"Inspection output is incomplete",
		fmt.Sprintf("field %s is missing", path),
		"",
		&FieldAccessError{Path: path},
	)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *RunlikeError {
	return NewRunlikeError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}

func NewConfigError(context, cause, suggestion string, originalErr error) *RunlikeError {
	return NewRunlikeError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}

// withWrapped appends err to the wrapped chain.
func (e *RunlikeError) withWrapped(err error) *RunlikeError {
	if err != nil {
		e.OriginalErr = fmt.Errorf("%w: %w", e.OriginalErr, err)
	}
	return e
}
