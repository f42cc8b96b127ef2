package errx

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
)

// Origin groups kinds by where they are raised. The grouping is informational;
// kinds stay flat in representation.
type Origin uint8

const (
	// OriginDomain covers filesystem-style operation failures.
	OriginDomain Origin = iota + 1
	// OriginHost covers allocation, memory and argument failures of the host runtime.
	OriginHost
	// OriginShared covers kinds used by both groups, including Unknown.
	OriginShared
)

// String returns the lower-case origin name.
func (o Origin) String() string {
	switch o {
	case OriginDomain:
		return "domain"
	case OriginHost:
		return "host"
	case OriginShared:
		return "shared"
	default:
		return "unknown"
	}
}

// ParseOrigin resolves an origin from its String form.
func ParseOrigin(s string) (Origin, bool) {
	for _, o := range []Origin{OriginDomain, OriginHost, OriginShared} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// Origin returns the group of k. Undeclared tags belong to OriginShared,
// the group of Unknown.
func (k Kind) Origin() Origin {
	if entry := registryByTag[k]; entry != nil {
		return entry.Origin
	}
	return OriginShared
}

// KindsOf returns the declared kinds of one origin in declaration order.
func KindsOf(origin Origin) []Kind {
	var kinds []Kind
	for _, entry := range registryEntries {
		if entry.Origin == origin {
			kinds = append(kinds, entry.Kind)
		}
	}
	return kinds
}

// From converts a foreign error into a root record of the given kind. The
// message defaults to err.Error() and err stays reachable through errors.Is
// and errors.As. Options are applied after the defaults.
func From(kind Kind, err error, opts ...Option) *Error {
	if err == nil {
		return New(kind, opts...)
	}
	defaults := []Option{WithMessage("%s", err.Error()), WithBase(err)}
	return New(kind, append(defaults, opts...)...)
}

// Classify maps well-known standard library errors onto a kind. Records
// report their own kind. ok is false when nothing matches; callers choose
// their own fallback rather than Unknown.
func Classify(err error) (kind Kind, ok bool) {
	if e, found := AsError(err); found {
		return e.kind, true
	}
	switch {
	case err == nil:
		return Unknown, false
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied, true
	case errors.Is(err, fs.ErrNotExist):
		return NoSuchElement, true
	case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return OperationTimedOut, true
	case errors.Is(err, io.ErrShortWrite), errors.Is(err, io.ErrClosedPipe):
		return WriteFailed, true
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return ReadFailed, true
	case errors.Is(err, fs.ErrInvalid):
		return InvalidArgument, true
	}
	return Unknown, false
}
