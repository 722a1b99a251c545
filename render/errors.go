// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures that are reported to the user.
type ErrorKind uint8

const (
	// ContextUnavailable means no context kind produced a context.
	ContextUnavailable ErrorKind = iota + 1
	// ShaderCompileFailed covers missing sources, unknown type tags and
	// compilation errors.
	ShaderCompileFailed
	// ProgramLinkFailed covers link errors and an unresolvable vertex
	// position attribute.
	ProgramLinkFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ContextUnavailable:
		return "ContextUnavailable"
	case ShaderCompileFailed:
		return "ShaderCompileFailed"
	case ProgramLinkFailed:
		return "ProgramLinkFailed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Messages shown to the user, one per ErrorKind.
const (
	msgContext = "Failed to create WebGL context!"
	msgCompile = "Error compiling shader"
	msgLink    = "Failed to setup shaders"
)

var (
	ErrContextUnavailable = errors.New("render: webgl is not supported")
	ErrInvalidState       = errors.New("render: invalid state")
)

// Error is a pipeline failure of a specific kind.
type Error struct {
	Kind ErrorKind
	// ID is the source identifier of the failing shader, if any.
	ID string
	// Log is the driver diagnostic, if any.
	Log string
	Err error
}

func (e *Error) Error() string {
	msg := "render: " + e.Kind.String()
	if e.ID != "" {
		msg += " (" + e.ID + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Log != "" {
		msg += ": " + e.Log
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// message returns the text presented to the user.
func (e *Error) message() string {
	switch e.Kind {
	case ContextUnavailable:
		return msgContext
	case ShaderCompileFailed:
		detail := e.Log
		if detail == "" && e.Err != nil {
			detail = e.Err.Error()
		}
		return msgCompile + ": " + detail
	default:
		return msgLink
	}
}

// KindOf returns the ErrorKind of err, if err is or wraps an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
