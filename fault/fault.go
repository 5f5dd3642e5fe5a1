// Package fault classifies gateway errors so transport handlers can map
// them to wire status codes without inspecting message strings.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind partitions failures by who can fix them.
type Kind int

const (
	// KindInvalid marks malformed or missing client input.
	KindInvalid Kind = iota + 1
	// KindUnavailable marks a closed capability gate. This is a standing
	// condition for the process lifetime, not a transient one.
	KindUnavailable
	// KindExecution marks a hardware-control or capture primitive that
	// failed at call time. Retrying is the caller's decision.
	KindExecution
	// KindNotFound marks an unknown key name or a missing stored record.
	KindNotFound
)

// Error carries a Kind alongside the message. It wraps an underlying error
// when one exists.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil && e.msg != "" {
		return e.msg + ": " + e.err.Error()
	}
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification of this error.
func (e *Error) Kind() Kind { return e.kind }

// Invalid reports malformed or missing required input.
func Invalid(format string, args ...any) error {
	return &Error{kind: KindInvalid, msg: fmt.Sprintf(format, args...)}
}

// Unavailable reports that the capability gate is closed.
func Unavailable(format string, args ...any) error {
	return &Error{kind: KindUnavailable, msg: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown name or a missing record.
func NotFound(format string, args ...any) error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Execution wraps an underlying primitive failure, preserving its message.
func Execution(err error) error {
	if err == nil {
		return nil
	}
	return &Error{kind: KindExecution, err: err}
}

// KindOf extracts the Kind from err, or 0 when err is not a fault.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return 0
}

// HTTPStatus maps an error onto the response code the wire contract
// promises. Unclassified errors are treated as execution failures.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return http.StatusBadRequest
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
