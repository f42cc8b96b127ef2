package errx

import (
	"errors"
	"fmt"
	"strings"
)

// Error is one error occurrence: a kind, an optional location, an optional
// message and an optional cause it was raised in response to.
//
// Records are immutable once built. The cause is set only at construction
// and is owned by exactly one record, so chains are finite and acyclic.
type Error struct {
	kind     Kind
	location *Location
	message  string
	cause    *Error
	base     error
}

// Option configures a record during construction.
type Option func(*Error)

// WithLocation attaches an explicit source location. A location with no
// file, no function and an unknown line is treated as absent.
func WithLocation(file string, line int, function string) Option {
	return WithLocationOf(Location{File: file, Line: line, Function: function})
}

// WithLocationOf attaches loc unless it is zero.
func WithLocationOf(loc Location) Option {
	return func(e *Error) {
		if loc.IsZero() {
			e.location = nil
			return
		}
		if loc.Line <= 0 {
			loc.Line = UnknownLine
		}
		e.location = &loc
	}
}

// WithCaller attaches the location of the function skip levels above the
// caller of WithCaller. WithCaller(0) records the line calling WithCaller.
func WithCaller(skip int) Option {
	loc := callerLocation(skip + 1)
	return WithLocationOf(loc)
}

// WithMessage attaches a printf-style message rendered with args. The format
// is always rendered, so literal text containing % must go through "%s".
func WithMessage(format string, args ...any) Option {
	return func(e *Error) {
		e.message = fmt.Sprintf(format, args...)
	}
}

// WithBase attaches a foreign error matched by errors.Is and errors.As.
// It is never rendered by Report.
func WithBase(base error) Option {
	return func(e *Error) { e.base = base }
}

// New creates a record with no cause.
func New(kind Kind, opts ...Option) *Error {
	e := &Error{kind: kind}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Wrap creates a record raised in response to cause. Ownership of cause moves
// into the returned record; the caller must not wrap or report cause again.
func Wrap(kind Kind, cause *Error, opts ...Option) *Error {
	e := New(kind, opts...)
	e.cause = cause
	return e
}

// Newf creates a record located at its caller with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, WithLocationOf(callerLocation(1)), WithMessage(format, args...))
}

// Wrapf wraps cause with a record located at its caller.
func Wrapf(kind Kind, cause *Error, format string, args ...any) *Error {
	return Wrap(kind, cause, WithLocationOf(callerLocation(1)), WithMessage(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for link := e; link != nil; link = link.cause {
		if link != e {
			b.WriteString(": ")
		}
		b.WriteString(link.kind.Name())
		if link.message != "" {
			b.WriteString(": ")
			b.WriteString(link.message)
		}
	}
	return b.String()
}

// Unwrap returns the cause, or nil for a root cause.
func (e *Error) Unwrap() error {
	if e == nil || e.cause == nil {
		return nil
	}
	return e.cause
}

// Is matches a *Error target of the same kind, or the base error.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	var t *Error
	if errors.As(target, &t) && t != nil && t.kind == e.kind {
		return true
	}
	return e.base != nil && errors.Is(e.base, target)
}

// As lets errors.As reach the base error.
func (e *Error) As(target any) bool {
	if e == nil || e.base == nil {
		return false
	}
	return errors.As(e.base, target)
}

// Kind returns the error kind.
func (e *Error) Kind() Kind {
	if e == nil {
		return Unknown
	}
	return e.kind
}

// Location returns the source location and whether one was attached.
func (e *Error) Location() (Location, bool) {
	if e == nil || e.location == nil {
		return Location{Line: UnknownLine}, false
	}
	return *e.location, true
}

// Message returns the rendered message, empty when none was supplied.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Cause returns the record this one was raised in response to.
func (e *Error) Cause() *Error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Base returns the foreign error attached with WithBase or From.
func (e *Error) Base() error {
	if e == nil {
		return nil
	}
	return e.base
}

// Chain returns the records outermost first, ending with the root cause.
func (e *Error) Chain() []*Error {
	var chain []*Error
	for link := e; link != nil; link = link.cause {
		chain = append(chain, link)
	}
	return chain
}

// Root returns the terminal record of the chain.
func (e *Error) Root() *Error {
	if e == nil {
		return nil
	}
	link := e
	for link.cause != nil {
		link = link.cause
	}
	return link
}

// Depth returns the number of records in the chain.
func (e *Error) Depth() int {
	n := 0
	for link := e; link != nil; link = link.cause {
		n++
	}
	return n
}

// AsError finds the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// HasKind reports whether any record in err's chain has kind k.
func HasKind(err error, k Kind) bool {
	return errors.Is(err, New(k))
}
