// Package logging builds the CLI's zap logger and routes styling errors
// through it.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/stylebind/pkg/errors"
)

// New builds a logger writing to stderr. format is "console" or "json".
func New(verbose bool, format string) (*zap.Logger, error) {
	var config zap.Config
	switch format {
	case "json":
		config = zap.NewProductionConfig()
	case "console", "":
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ErrorHandler is an errors.ErrorHandler that logs through zap.
type ErrorHandler struct {
	Logger *zap.Logger
}

// NewErrorHandler wraps logger.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{Logger: logger}
}

// HandleError logs a StylingError.
func (h *ErrorHandler) HandleError(err *errors.StylingError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Prop != "" {
		fields = append(fields, zap.String("prop", err.Prop))
	}
	h.Logger.Error("styling error", fields...)
}

// HandlePanic logs a PanicError. Stack traces are only kept at debug level.
func (h *ErrorHandler) HandlePanic(err *errors.PanicError) {
	if err == nil {
		return
	}
	h.Logger.Error("styling panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value))
	if err.StackTrace != "" {
		h.Logger.Debug("panic stack", zap.String("op", err.Op), zap.String("stack", err.StackTrace))
	}
}
