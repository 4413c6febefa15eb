package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/natefinch/lumberjack.v2"

	"runlike/internal/ui"
)

const LogFileName = "runlike.log"

// LogOptions controls the rotated log file shared by the error handler and
// the process-wide slog logger.
type LogOptions struct {
	Dir        string
	Level      slog.Level
	MaxSizeMB  int
	MaxBackups int
}

func DefaultLogOptions() LogOptions {
	return LogOptions{
		Level:      slog.LevelInfo,
		MaxSizeMB:  10,
		MaxBackups: 5,
	}
}

type ErrorHandler struct {
	logger  *slog.Logger
	console *ui.Console
	writer  *lumberjack.Logger
}

func NewErrorHandler(opts LogOptions) (*ErrorHandler, error) {
	writer, err := newLogWriter(opts)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: opts.Level,
	}))

	return &ErrorHandler{
		logger:  logger,
		console: ui.NewConsole(),
		writer:  writer,
	}, nil
}

// Logger returns the JSON logger writing to the rotated log file.
func (h *ErrorHandler) Logger() *slog.Logger {
	return h.logger
}

// LogPath returns the active log file path.
func (h *ErrorHandler) LogPath() string {
	return h.writer.Filename
}

func (h *ErrorHandler) Close() error {
	return h.writer.Close()
}

// getOSStandardLogDir returns the OS-standard log directory path
func getOSStandardLogDir() (string, error) {
	// Check for environment variable override first
	if customLogDir := os.Getenv("RUNLIKE_LOG_DIR"); customLogDir != "" {
		return customLogDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "runlike"), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
			return filepath.Join(stateHome, "runlike"), nil
		}
		return filepath.Join(homeDir, ".local", "state", "runlike"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "runlike", "logs"), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", "runlike", "logs"), nil
	default:
		return filepath.Join(homeDir, ".runlike", "logs"), nil
	}
}

// createLogDirectoryWithFallback creates the log directory, falling back to
// the current directory when it cannot be written.
func createLogDirectoryWithFallback(preferred string) (string, bool, error) {
	logDir := preferred
	var err error
	if logDir == "" {
		logDir, err = getOSStandardLogDir()
	}

	if err == nil {
		if mkErr := os.MkdirAll(logDir, 0750); mkErr == nil {
			testFile := filepath.Join(logDir, ".test_write")
			if f, testErr := os.Create(testFile); testErr == nil {
				_ = f.Close()
				_ = os.Remove(testFile)
				return logDir, false, nil
			} else {
				err = testErr
			}
		} else {
			err = mkErr
		}
	}

	currentDir, cwdErr := os.Getwd()
	if cwdErr != nil {
		return "", true, fmt.Errorf("cannot determine current directory for fallback logging: %w", cwdErr)
	}

	ui.NewConsole().PrintWarning(fmt.Sprintf("cannot use log directory %s: %v. Falling back to current directory for logging.", logDir, err))
	return currentDir, true, nil
}

func newLogWriter(opts LogOptions) (*lumberjack.Logger, error) {
	logDir, _, err := createLogDirectoryWithFallback(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultLogOptions().MaxSizeMB
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    maxSize, // MB
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}, nil
}

func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var runlikeErr *RunlikeError
	if errors.As(err, &runlikeErr) {
		h.handleRunlikeError(runlikeErr)
	} else {
		h.handleGenericError(err)
	}
}

func (h *ErrorHandler) handleRunlikeError(err *RunlikeError) {
	h.logStructuredError(err)

	message := h.console.FormatErrorMessage(err.Context, err.Cause)
	if message == "" {
		message = err.Error()
	}
	h.console.PrintError(message)
}

func (h *ErrorHandler) handleGenericError(err error) {
	h.logger.Error("Unhandled error occurred",
		"error", err.Error(),
		"type", "generic",
	)

	h.console.PrintError(h.console.FormatErrorMessage(err.Error(), ""))
}

func (h *ErrorHandler) logStructuredError(err *RunlikeError) {
	logAttrs := []slog.Attr{
		slog.String("error", err.OriginalErr.Error()),
		slog.String("type", getErrorTypeName(err.Type)),
		slog.String("context", err.Context),
	}

	if err.Cause != "" {
		logAttrs = append(logAttrs, slog.String("cause", err.Cause))
	}

	if err.Suggestion != "" {
		logAttrs = append(logAttrs, slog.String("suggestion", err.Suggestion))
	}

	var fieldErr *FieldAccessError
	if errors.As(err, &fieldErr) {
		logAttrs = append(logAttrs, slog.String("path", fieldErr.Path))
	}

	h.logger.LogAttrs(context.TODO(), slog.LevelError, "runlike error occurred", logAttrs...)
}

func getErrorTypeName(errType error) string {
	switch errType {
	case ErrContainerNotFound:
		return "container_not_found"
	case ErrInspectionFailed:
		return "inspection_failed"
	case ErrParseFailed:
		return "parse_failed"
	case ErrFieldAccess:
		return "field_access"
	case ErrRuntimeFailed:
		return "runtime_failed"
	case ErrConfigInvalid:
		return "config_invalid"
	default:
		return "unknown"
	}
}
