// Package apperr defines the failure kinds that services return and the HTTP
// layer maps to status codes.
//
//	if errors.Is(err, apperr.AlreadyExists) { ... }
package apperr

import "errors"

// Kind classifies a failure. A Kind is itself an error so it can be used as
// an errors.Is target.
type Kind uint8

const (
	Unknown Kind = iota
	InvalidInput
	AlreadyExists
	InvalidCredentials
	Unauthenticated
	NotFound
	Upstream
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case AlreadyExists:
		return "already exists"
	case InvalidCredentials:
		return "invalid credentials"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not found"
	case Upstream:
		return "upstream failure"
	default:
		return "unknown"
	}
}

func (k Kind) Error() string { return k.String() }

// Error is a classified failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New returns an Error of kind with message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err. The message may be empty, in which case err's text is
// used.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind carried by err. Errors that were never classified
// are reported as Upstream.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Upstream
}
