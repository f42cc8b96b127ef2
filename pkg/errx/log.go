package errx

import (
	"github.com/go-logr/logr"
)

// Log writes err through logger with one key/value per record field:
//   - error.kind: "OutOfMemoryException"
//   - error.origin: "host"
//   - error.location: "alloc.c:42, func grow"
//   - error.message: "needed 4096 bytes"
//   - error.depth: 2
//   - error.cause: "InstanceFailureException"
//
// Errors without an errx record are logged as they are.
func Log(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}

	e, ok := AsError(err)
	if !ok {
		logger.Error(err, msg)
		return
	}

	keysAndValues := []interface{}{
		"error.kind", e.kind.Name(),
		"error.origin", e.kind.Origin().String(),
	}
	if loc, ok := e.Location(); ok {
		keysAndValues = append(keysAndValues, "error.location", loc.String())
	}
	if e.message != "" {
		keysAndValues = append(keysAndValues, "error.message", e.message)
	}
	keysAndValues = append(keysAndValues, "error.depth", e.Depth())
	if cause := e.Cause(); cause != nil {
		keysAndValues = append(keysAndValues, "error.cause", cause.Error())
	}

	logger.Error(err, msg, keysAndValues...)
}
