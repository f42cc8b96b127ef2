package errx

import (
	"fmt"
	"io"
	"os"
)

// ExitFailure is the process status used by ReportAndAbort.
const ExitFailure = 1

// Test seams.
var (
	exitFunc           = os.Exit
	stderr   io.Writer = os.Stderr
)

// ReportAndAbort reports err to w and ends the process with ExitFailure.
// When w fails, the chain and the sink failure are written to stderr on a
// best-effort basis before exiting.
func ReportAndAbort(w io.Writer, err *Error) {
	if rerr := Report(w, err); rerr != nil {
		_ = Report(stderr, err)
		_, _ = fmt.Fprintln(stderr, rerr)
	}
	exitFunc(ExitFailure)
}

// Throw raises a record located at its caller, reports it to stderr and
// ends the process. An empty format attaches no message.
func Throw(kind Kind, format string, args ...any) {
	opts := []Option{WithLocationOf(callerLocation(1))}
	if format != "" {
		opts = append(opts, WithMessage(format, args...))
	}
	ReportAndAbort(stderr, New(kind, opts...))
}
