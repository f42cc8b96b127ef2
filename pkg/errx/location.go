package errx

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// UnknownLine marks a location whose line number is not known.
const UnknownLine = -1

// Location identifies where a record was raised.
type Location struct {
	File     string
	Line     int
	Function string
}

// IsZero reports whether l carries no information at all.
func (l Location) IsZero() bool {
	return l.File == "" && l.Function == "" && (l.Line == UnknownLine || l.Line == 0)
}

// LineString renders the line number, or "?" when it is unknown.
func (l Location) LineString() string {
	if l.Line <= 0 {
		return "?"
	}
	return strconv.Itoa(l.Line)
}

// String renders "file:line, func function".
func (l Location) String() string {
	return l.File + ":" + l.LineString() + ", func " + l.Function
}

// Here returns the location of its caller.
func Here() Location {
	return callerLocation(1)
}

// callerLocation resolves the frame skip levels above its caller. Frames are
// resolved through CallersFrames so inlined callers keep their own name.
func callerLocation(skip int) Location {
	var pcs [4]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return Location{Line: UnknownLine}
	}
	frame, _ := runtime.CallersFrames(pcs[:n]).Next()
	if frame.File == "" && frame.Function == "" {
		return Location{Line: UnknownLine}
	}
	line := frame.Line
	if line <= 0 {
		line = UnknownLine
	}
	return Location{
		File:     filepath.Base(frame.File),
		Line:     line,
		Function: shortFuncName(frame.Function),
	}
}

// shortFuncName strips the import path and package name:
// "excep/internal/cli.(*Loader).load" becomes "(*Loader).load".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
