package errx

import (
	"fmt"
	"io"
	"strings"
)

// Diagnostic templates. LocatedFormat takes the kind name, file, line and
// function; PlainFormat takes only the kind name.
const (
	LocatedFormat = "Threw the %s:\n\tat %s:%s, func %s\n"
	PlainFormat   = "Threw the %s\n"
)

// Report writes one diagnostic block per record, outermost first, and stops
// after the root cause. A record without a location renders as a single
// plain line and its message is dropped.
//
// Writing stops at the first sink failure, which is returned as a
// WriteFailed record whose base is the sink error.
func Report(w io.Writer, err *Error) error {
	for i, link := 0, err; link != nil; i, link = i+1, link.cause {
		block := render(link)
		n, werr := io.WriteString(w, block)
		if werr == nil && n < len(block) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			return From(WriteFailed, werr,
				WithMessage("report %s (link %d of %d): %v", link.kind.Name(), i+1, err.Depth(), werr))
		}
	}
	return nil
}

// Render returns the text Report would write for err.
func Render(err *Error) string {
	var b strings.Builder
	for link := err; link != nil; link = link.cause {
		b.WriteString(render(link))
	}
	return b.String()
}

func render(e *Error) string {
	if e.location == nil {
		return fmt.Sprintf(PlainFormat, e.kind.Name())
	}
	loc := e.location
	out := fmt.Sprintf(LocatedFormat, e.kind.Name(), loc.File, loc.LineString(), loc.Function)
	if e.message != "" {
		out += e.message + "\n"
	}
	return out
}

// UserString returns the most user-friendly text for err: the outermost
// message, else the kind name, else err.Error() for foreign errors.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := AsError(err); ok {
		if e.message != "" {
			return e.message
		}
		return e.kind.Name()
	}
	return err.Error()
}

// IsError checks if the given error contains an errx record.
func IsError(err error) bool {
	_, ok := AsError(err)
	return ok
}

// DebugString returns one numbered line per link of err's chain, including
// foreign errors reached through Unwrap.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Error:
			b.WriteString(fmt.Sprintf("%d: %s", i+1, typed.kind.Name()))
			b.WriteString(fmt.Sprintf(" | kind=%d | origin=%s", uint8(typed.kind), typed.kind.Origin()))
			if typed.location != nil {
				b.WriteString(fmt.Sprintf(" | at=%s:%s | func=%s",
					typed.location.File, typed.location.LineString(), typed.location.Function))
			}
			if typed.message != "" {
				b.WriteString(fmt.Sprintf(" | message=%q", typed.message))
			}
			if typed.base != nil {
				b.WriteString(fmt.Sprintf(" | base=%q", typed.base.Error()))
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, item.Error()))
		}
	}
	return b.String()
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}
