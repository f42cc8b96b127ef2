package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors, each registered to an errx kind
//   - Helpers that raise errx records located at the failing call site
//   - Structured error logging in debug mode
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"excep/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

// errorKinds maps sentinel errors to the kind of the record raised for them.
// Populated by newSentinelError during variable initialization, so it must be
// declared before the sentinels.
var errorKinds = make(map[error]errx.Kind)

// newSentinelError creates a sentinel error and registers its kind in one step.
func newSentinelError(msg string, kind errx.Kind) error {
	err := errors.New(msg)
	errorKinds[err] = kind
	return err
}

// Sentinel errors for CLI operations.
var (
	// Argument errors.
	ErrUnknownKind      = newSentinelError("unknown error kind", errx.InvalidArgument)
	ErrUnknownOrigin    = newSentinelError("unknown origin", errx.InvalidArgument)
	ErrInvalidRawTag    = newSentinelError("invalid raw tag", errx.InvalidArgument)
	ErrInvalidLine      = newSentinelError("invalid line number", errx.InvalidArgument)
	ErrTooFewFormatArgs = newSentinelError("not enough arguments for message format", errx.InvalidArgument)

	// Chain file errors.
	ErrReadChainFileFailed  = newSentinelError("failed to read chain file", errx.ReadFailed)
	ErrUnmarshalChainFailed = newSentinelError("failed to unmarshal chain file", errx.InvalidArgument)
	ErrEmptyChain           = newSentinelError("chain has no links", errx.NoSuchElement)

	// Config errors.
	ErrGetHomeDirectoryFailed = newSentinelError("failed to get home directory", errx.NoSuchElement)
	ErrReadConfigFailed       = newSentinelError("failed to read config", errx.ReadFailed)
	ErrUnmarshalConfigFailed  = newSentinelError("failed to unmarshal config", errx.InvalidArgument)
	ErrInvalidConfigValue     = newSentinelError("invalid config value", errx.InvalidArgument)

	// Output errors.
	ErrWriteReportFailed = newSentinelError("failed to write report", errx.WriteFailed)
	ErrWriteOutputFailed = newSentinelError("failed to write output", errx.WriteFailed)
)

func kindFor(base error) errx.Kind {
	if kind, ok := errorKinds[base]; ok {
		return kind
	}
	return errx.InvalidArgument
}

// newWithSentinel raises a record for base, located at the caller.
func newWithSentinel(base error, msg string) error {
	return errx.New(kindFor(base),
		errx.WithCaller(1),
		errx.WithMessage("%s", msg),
		errx.WithBase(base))
}

// wrapWithSentinel raises a record for base, located at the caller, with
// cause as its root. A foreign cause is converted first: its kind comes from
// errx.Classify, falling back to the kind of base.
func wrapWithSentinel(base, cause error, msg string) error {
	if cause == nil {
		return errx.New(kindFor(base), errx.WithCaller(1), errx.WithMessage("%s", msg), errx.WithBase(base))
	}
	root, ok := cause.(*errx.Error)
	if !ok {
		kind, classified := errx.Classify(cause)
		if !classified {
			kind = kindFor(base)
		}
		root = errx.From(kind, cause)
	}
	return errx.Wrap(kindFor(base), root,
		errx.WithCaller(1),
		errx.WithMessage("%s", msg),
		errx.WithBase(base))
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
// The zap logger uses console encoding, so the fields stay human-readable:
//   - error.kind: "ReadOperationFailedException"
//   - error.origin: "domain"
//   - error.location: "render.go:57, func LoadChain"
//   - error.message: "failed to read chain file chain.yaml"
//   - error.depth: 2
//   - error.cause: "NoSuchElementException: open chain.yaml: no such file or directory"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	rec, ok := errx.AsError(err)
	if !ok {
		// Fallback for non-errx errors
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("error.kind", rec.Kind().Name()),
		zap.Stringer("error.origin", rec.Kind().Origin()),
		zap.Int("error.depth", rec.Depth()),
		zap.Error(err),
	}
	if loc, ok := rec.Location(); ok {
		fields = append(fields, zap.Stringer("error.location", loc))
	}
	if message := rec.Message(); message != "" {
		fields = append(fields, zap.String("error.message", message))
	}
	// Distinct field name to avoid a duplicate "error" field.
	if cause := rec.Cause(); cause != nil {
		fields = append(fields, zap.NamedError("error.cause", cause))
	}

	logger.Error(msg, fields...)
}
