package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

// CurrentHandler returns the handler Report and ReportPanic deliver to.
// Until SetHandler is called it is a non-verbose LogHandler.
func CurrentHandler() ErrorHandler {
	if b := current.Load(); b != nil {
		return b.h
	}
	return defaultHandler
}

var defaultHandler ErrorHandler = &LogHandler{}

// SetHandler installs h as the global handler. nil restores the default.
func SetHandler(h ErrorHandler) {
	if h == nil {
		current.Store(nil)
		return
	}
	current.Store(&handlerBox{h: h})
}

// Report delivers err to the current handler, stamping it if needed.
func Report(err *StylingError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandleError(err)
}

// ReportPanic delivers err to the current handler, stamping it if needed.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandlePanic(err)
}

// Misuse panics with a UsageError. Registration code calls it when the
// instruction stream breaks an ordering or identity rule.
func Misuse(err *UsageError) {
	panic(err)
}

// AsUsage reports whether a recovered panic value is a UsageError.
func AsUsage(r any) (*UsageError, bool) {
	u, ok := r.(*UsageError)
	return u, ok
}

// Recover reports a panic in the calling goroutine and swallows it.
// It must be deferred directly: defer errors.Recover("styling.Flush").
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r) for a recovered
// value.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
	})
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line"
// pair per frame. Runtime frames and this package's recovery helpers are
// left out.
func CaptureStack() string {
	var pcs [48]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !skipFrame(frame.Function) {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func skipFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	for _, helper := range []string{".reportRecovered", ".Recover", ".RecoverWithCallback"} {
		if strings.HasSuffix(fn, "/pkg/errors"+helper) {
			return true
		}
	}
	return false
}
