// Package errors provides structured error handling for stylebind.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRegistration indicates a failure while registering a binding.
	KindRegistration
	// KindResolution indicates a failure while resolving or applying a value.
	KindResolution
	// KindConfig indicates a configuration or scenario file error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindUsage indicates a programming error in the calling instruction stream.
	KindUsage
)

func (k ErrorKind) String() string {
	switch k {
	case KindRegistration:
		return "registration"
	case KindResolution:
		return "resolution"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	case KindUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// StylingError represents a structured error reported by the styling runtime.
type StylingError struct {
	// Op is the operation that failed (e.g., "styling.Flush").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Prop is the property or class name involved, if any.
	Prop string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *StylingError) Error() string {
	if e.Prop != "" {
		return fmt.Sprintf("%s [%s] prop=%s: %v", e.Op, e.Kind, e.Prop, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StylingError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.FlushStyling").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// UsageError describes misuse of the registration API by its caller. It is
// raised with panic, never returned: a malformed instruction stream is a bug
// upstream and the table does not try to recover from it.
type UsageError struct {
	// Op is the operation that detected the misuse.
	Op string
	// Prop is the property being registered.
	Prop string
	// BindingID is the binding slot involved.
	BindingID int
	// SourceIndex is the source category of the offending call.
	SourceIndex int
	// Reason describes the violated rule.
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s (prop=%q binding=%d source=%d)", e.Op, e.Reason, e.Prop, e.BindingID, e.SourceIndex)
}

// ErrorHandler receives errors reported by the styling runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *StylingError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
